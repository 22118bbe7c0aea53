package models

type Location struct {
	BaseModel

	Title       string `gorm:"not null" json:"title"`
	CreatedByID uint   `gorm:"not null;index" json:"created_by_id"`
}
