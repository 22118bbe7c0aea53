package models

type Timeline struct {
	BaseModel

	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`

	// Relationships
	Events []Event `gorm:"foreignKey:TimelineID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
