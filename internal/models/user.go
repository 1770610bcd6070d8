package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name  string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`
	Plan  string `gorm:"not null;default:'Free'"`

	// Relationships
	Monitors      []Monitor      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AlertChannels []AlertChannel `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
