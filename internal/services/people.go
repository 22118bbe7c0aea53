package services

import (
	"context"
	"fmt"

	"github.com/timeline-dev/timelines/internal/models"
	"gorm.io/gorm"
)

type PersonService struct {
	db *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{db: db}
}

func (s *PersonService) List(ctx context.Context, ownerID uint) ([]models.Person, error) {
	people, err := listOwned[models.Person](ctx, s.db, "created_by_id", ownerID, "name ASC")

	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}

	return people, nil
}

func (s *PersonService) Get(ctx context.Context, ownerID, id uint) (*models.Person, error) {
	return firstOwned[models.Person](ctx, s.db, "created_by_id", ownerID, id)
}

func (s *PersonService) Create(ctx context.Context, ownerID uint, name string) (*models.Person, error) {
	person := models.Person{Name: name, CreatedByID: ownerID}

	if err := s.db.WithContext(ctx).Create(&person).Error; err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	return &person, nil
}

func (s *PersonService) Update(ctx context.Context, ownerID, id uint, name string) (*models.Person, error) {
	person, err := s.Get(ctx, ownerID, id)

	if err != nil {
		return nil, err
	}

	person.Name = name

	if err := s.db.WithContext(ctx).Save(person).Error; err != nil {
		return nil, fmt.Errorf("update person %d: %w", id, err)
	}

	return person, nil
}

func (s *PersonService) Delete(ctx context.Context, ownerID, id uint) error {
	person, err := s.Get(ctx, ownerID, id)

	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(person).Error; err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}

	return nil
}
