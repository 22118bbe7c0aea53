package models

type Person struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	CreatedByID uint   `gorm:"not null;index" json:"created_by_id"`
}
