package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// firstOwned loads the row with the given id only if ownerColumn matches ownerID.
func firstOwned[T any](ctx context.Context, conn *gorm.DB, ownerColumn string, ownerID, id uint) (*T, error) {
	var row T

	err := conn.WithContext(ctx).
		Where("id = ? AND "+ownerColumn+" = ?", id, ownerID).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &row, nil
}

func listOwned[T any](ctx context.Context, conn *gorm.DB, ownerColumn string, ownerID uint, order string) ([]T, error) {
	var rows []T

	if err := conn.WithContext(ctx).Where(ownerColumn+" = ?", ownerID).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
