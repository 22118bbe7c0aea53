package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/timeline-dev/timelines/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db   *gorm.DB
	cost int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy hashing passwords with the given bcrypt cost.
func (s *UserService) WithCost(cost int) *UserService {
	return &UserService{db: s.db, cost: cost}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).
		Preload("Password").
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) Create(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	_, err := s.GetByEmail(ctx, email)

	if err == nil {
		return nil, ErrEmailTaken
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: models.Password{Hash: string(hash)},
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Verify returns the user when password matches, ErrInvalidCredentials otherwise.
func (s *UserService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password.Hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// DeleteByEmail removes the user and every row it owns.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	user, err := s.GetByEmail(ctx, email)

	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Timeline{}).Select("id").Where("user_id = ?", user.ID)

		steps := []struct {
			what  string
			query *gorm.DB
			model any
		}{
			{"events", tx.Where("timeline_id IN (?) OR created_by_id = ?", owned, user.ID), &models.Event{}},
			{"timelines", tx.Where("user_id = ?", user.ID), &models.Timeline{}},
			{"locations", tx.Where("created_by_id = ?", user.ID), &models.Location{}},
			{"people", tx.Where("created_by_id = ?", user.ID), &models.Person{}},
			{"password", tx.Where("user_id = ?", user.ID), &models.Password{}},
		}

		for _, step := range steps {
			if err := step.query.Delete(step.model).Error; err != nil {
				return fmt.Errorf("delete %s of user %d: %w", step.what, user.ID, err)
			}
		}

		if err := tx.Delete(&models.User{}, user.ID).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", user.ID, err)
		}

		return nil
	})
}
