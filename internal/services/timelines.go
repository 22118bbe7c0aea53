package services

import (
	"context"
	"fmt"

	"github.com/timeline-dev/timelines/internal/models"
	"gorm.io/gorm"
)

type TimelineInput struct {
	Title       string
	Description *string
	ImageURL    *string
}

// TimelineUpdate leaves Description and ImageURL untouched when they are nil.
type TimelineUpdate struct {
	Title       string
	Description *string
	ImageURL    *string
}

type TimelineService struct {
	db *gorm.DB
}

func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db}
}

func (s *TimelineService) List(ctx context.Context, ownerID uint) ([]models.Timeline, error) {
	timelines, err := listOwned[models.Timeline](ctx, s.db, "user_id", ownerID, "updated_at DESC, id DESC")

	if err != nil {
		return nil, fmt.Errorf("list timelines: %w", err)
	}

	return timelines, nil
}

func (s *TimelineService) Get(ctx context.Context, ownerID, id uint) (*models.Timeline, error) {
	return firstOwned[models.Timeline](ctx, s.db, "user_id", ownerID, id)
}

func (s *TimelineService) Create(ctx context.Context, ownerID uint, in TimelineInput) (*models.Timeline, error) {
	timeline := models.Timeline{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      ownerID,
	}

	if err := s.db.WithContext(ctx).Create(&timeline).Error; err != nil {
		return nil, fmt.Errorf("create timeline: %w", err)
	}

	return &timeline, nil
}

func (s *TimelineService) Update(ctx context.Context, ownerID, id uint, in TimelineUpdate) (*models.Timeline, error) {
	timeline, err := s.Get(ctx, ownerID, id)

	if err != nil {
		return nil, err
	}

	timeline.Title = in.Title

	if in.Description != nil {
		timeline.Description = in.Description
	}

	if in.ImageURL != nil {
		timeline.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(timeline).Error; err != nil {
		return nil, fmt.Errorf("update timeline %d: %w", id, err)
	}

	return timeline, nil
}

// Delete removes the timeline together with its events.
func (s *TimelineService) Delete(ctx context.Context, ownerID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		timeline, err := firstOwned[models.Timeline](ctx, tx, "user_id", ownerID, id)

		if err != nil {
			return err
		}

		if err := tx.Where("timeline_id = ?", timeline.ID).Delete(&models.Event{}).Error; err != nil {
			return fmt.Errorf("delete events of timeline %d: %w", id, err)
		}

		if err := tx.Delete(timeline).Error; err != nil {
			return fmt.Errorf("delete timeline %d: %w", id, err)
		}

		return nil
	})
}
