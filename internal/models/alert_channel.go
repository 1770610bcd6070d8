package models

import (
	"gorm.io/datatypes"
)

type AlertChannel struct {
	BaseModel

	UserID  uint           `gorm:"not null;index"`
	Type    string         `gorm:"not null"` // "email", "webhook", "slack"
	Name    string         `gorm:"not null"`
	Config  datatypes.JSON `gorm:"type:jsonb"`
	Enabled bool           `gorm:"not null;default:true"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
