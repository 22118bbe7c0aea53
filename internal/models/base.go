package models

import "time"

// BaseModel is gorm.Model without DeletedAt: rows are removed physically.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
