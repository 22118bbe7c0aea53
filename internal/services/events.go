package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timeline-dev/timelines/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventInput struct {
	Title      string
	Content    string
	StartDate  time.Time
	LocationID *uint
}

// EventService scopes every event through the owning timeline.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) timeline(ctx context.Context, ownerID, timelineID uint) (*models.Timeline, error) {
	return firstOwned[models.Timeline](ctx, s.db, "user_id", ownerID, timelineID)
}

func (s *EventService) checkLocation(ctx context.Context, ownerID uint, locationID *uint) error {
	if locationID == nil {
		return nil
	}

	_, err := firstOwned[models.Location](ctx, s.db, "created_by_id", ownerID, *locationID)

	if errors.Is(err, ErrNotFound) {
		return ErrLocationNotFound
	}

	return err
}

func (s *EventService) List(ctx context.Context, ownerID, timelineID uint) ([]models.Event, error) {
	if _, err := s.timeline(ctx, ownerID, timelineID); err != nil {
		return nil, err
	}

	var events []models.Event

	if err := s.db.WithContext(ctx).
		Preload("Location").
		Where("timeline_id = ?", timelineID).
		Order("start_date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events of timeline %d: %w", timelineID, err)
	}

	return events, nil
}

func (s *EventService) Get(ctx context.Context, ownerID, timelineID, id uint) (*models.Event, error) {
	var event models.Event

	err := s.db.WithContext(ctx).
		Preload("Location").
		Joins("JOIN timelines ON timelines.id = events.timeline_id").
		Where("events.id = ? AND events.timeline_id = ? AND timelines.user_id = ?", id, timelineID, ownerID).
		First(&event).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (s *EventService) Create(ctx context.Context, ownerID, timelineID uint, in EventInput) (*models.Event, error) {
	if _, err := s.timeline(ctx, ownerID, timelineID); err != nil {
		return nil, err
	}

	if err := s.checkLocation(ctx, ownerID, in.LocationID); err != nil {
		return nil, err
	}

	event := models.Event{
		Title:       in.Title,
		Content:     in.Content,
		StartDate:   datatypes.Date(in.StartDate),
		TimelineID:  timelineID,
		LocationID:  in.LocationID,
		CreatedByID: ownerID,
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &event, nil
}

func (s *EventService) Update(ctx context.Context, ownerID, timelineID, id uint, in EventInput) (*models.Event, error) {
	event, err := s.Get(ctx, ownerID, timelineID, id)

	if err != nil {
		return nil, err
	}

	if err := s.checkLocation(ctx, ownerID, in.LocationID); err != nil {
		return nil, err
	}

	event.Title = in.Title
	event.Content = in.Content
	event.StartDate = datatypes.Date(in.StartDate)
	event.LocationID = in.LocationID
	event.Location = nil

	if err := s.db.WithContext(ctx).Omit("Location").Save(event).Error; err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, ownerID, timelineID, id uint) error {
	event, err := s.Get(ctx, ownerID, timelineID, id)

	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Event{}, event.ID).Error; err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	return nil
}

// Places returns the caller's locations referenced by events of the timeline.
func (s *EventService) Places(ctx context.Context, ownerID, timelineID uint) ([]models.Location, error) {
	if _, err := s.timeline(ctx, ownerID, timelineID); err != nil {
		return nil, err
	}

	referenced := s.db.Model(&models.Event{}).
		Select("location_id").
		Where("timeline_id = ? AND location_id IS NOT NULL", timelineID)

	var locations []models.Location

	if err := s.db.WithContext(ctx).
		Where("id IN (?) AND created_by_id = ?", referenced, ownerID).
		Order("title ASC").
		Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("list places of timeline %d: %w", timelineID, err)
	}

	return locations, nil
}
