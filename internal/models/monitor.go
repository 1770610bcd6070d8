package models

import "time"

type Monitor struct {
	BaseModel

	UserID          uint   `gorm:"not null;index"` // Foreign key to the User
	Name            string `gorm:"not null"`
	URL             string `gorm:"not null"`
	Type            string `gorm:"not null"` // "HTTP" or "HTTPS"
	IntervalMinutes int    `gorm:"not null"` // Minutes between checks
	TimeoutSeconds  int    `gorm:"not null"` // Per-probe request deadline
	Status          string `gorm:"not null"` // "UP", "DOWN" or "PAUSED"
	LastCheck       *time.Time
	NextCheck       *time.Time `gorm:"index"`
	ResponseTime    int        // Last observed latency in milliseconds
	Tags            string

	// Relationships
	User      User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Checks    []MonitorCheck `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Incidents []Incident     `gorm:"foreignKey:MonitorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
