package services

import (
	"context"
	"fmt"

	"github.com/timeline-dev/timelines/internal/models"
	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) List(ctx context.Context, ownerID uint) ([]models.Location, error) {
	locations, err := listOwned[models.Location](ctx, s.db, "created_by_id", ownerID, "title ASC")

	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	return locations, nil
}

func (s *LocationService) Get(ctx context.Context, ownerID, id uint) (*models.Location, error) {
	return firstOwned[models.Location](ctx, s.db, "created_by_id", ownerID, id)
}

func (s *LocationService) Create(ctx context.Context, ownerID uint, title string) (*models.Location, error) {
	location := models.Location{Title: title, CreatedByID: ownerID}

	if err := s.db.WithContext(ctx).Create(&location).Error; err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	return &location, nil
}

func (s *LocationService) Update(ctx context.Context, ownerID, id uint, title string) (*models.Location, error) {
	location, err := s.Get(ctx, ownerID, id)

	if err != nil {
		return nil, err
	}

	location.Title = title

	if err := s.db.WithContext(ctx).Save(location).Error; err != nil {
		return nil, fmt.Errorf("update location %d: %w", id, err)
	}

	return location, nil
}

// Delete removes the location and detaches it from any events.
func (s *LocationService) Delete(ctx context.Context, ownerID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		location, err := firstOwned[models.Location](ctx, tx, "created_by_id", ownerID, id)

		if err != nil {
			return err
		}

		if err := tx.Model(&models.Event{}).
			Where("location_id = ?", location.ID).
			Update("location_id", nil).Error; err != nil {
			return fmt.Errorf("detach location %d: %w", id, err)
		}

		if err := tx.Delete(location).Error; err != nil {
			return fmt.Errorf("delete location %d: %w", id, err)
		}

		return nil
	})
}
