package models

import (
	"time"
)

type MonitorCheck struct {
	BaseModel

	MonitorID    uint   `gorm:"not null;index"`
	Status       string `gorm:"not null"` // "UP" or "DOWN"
	ResponseTime int    `gorm:"not null"` // Milliseconds
	StatusCode   *int
	ErrorMessage string
	CheckedAt    time.Time `gorm:"not null;index"`

	// Relationships
	Monitor Monitor `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
