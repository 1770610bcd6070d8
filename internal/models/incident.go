package models

import (
	"time"

	"gorm.io/gorm"
)

type Incident struct {
	gorm.Model

	MonitorID  uint      `gorm:"not null;index"`
	StartedAt  time.Time `gorm:"not null"`
	ResolvedAt *time.Time
	Cause      string
	Status     string `gorm:"not null"` // "open" or "resolved"

	// Relationships
	Monitor Monitor `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
