package models

import "gorm.io/datatypes"

type Event struct {
	BaseModel

	Title       string         `gorm:"not null" json:"title"`
	Content     string         `json:"content"`
	StartDate   datatypes.Date `gorm:"not null;index" json:"start_date"`
	TimelineID  uint           `gorm:"not null;index" json:"timeline_id"`
	LocationID  *uint          `gorm:"index" json:"location_id"`
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`

	// Relationships
	Location *Location `gorm:"foreignKey:LocationID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"location,omitempty"`
}
