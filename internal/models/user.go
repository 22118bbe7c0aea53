package models

type User struct {
	BaseModel

	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Relationships
	Password  Password   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Timelines []Timeline `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Locations []Location `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	People    []Person   `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

type Password struct {
	BaseModel

	Hash   string `gorm:"not null"`
	UserID uint   `gorm:"not null;uniqueIndex"`
}
