package store

import (
	"errors"
	"time"

	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/types"
	"gorm.io/gorm"
)

// Store is the persistence boundary for the monitoring pipeline. The web/API
// layer owns everything else about these tables; the pipeline only uses the
// operations below.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// ListDueMonitors returns every non-paused monitor whose next check time has
// arrived (or was never set), oldest due first so long-overdue monitors are
// not starved behind newly due ones.
func (s *Store) ListDueMonitors(now time.Time) ([]models.Monitor, error) {
	var due []models.Monitor

	err := s.DB.
		Where("status <> ?", types.StatusPaused).
		Where("next_check IS NULL OR next_check <= ?", now).
		Order("next_check ASC NULLS FIRST").
		Find(&due).Error

	if err != nil {
		return nil, err
	}

	return due, nil
}

// InsertCheck appends one immutable check record.
func (s *Store) InsertCheck(monitorID uint, status string, responseTime int, statusCode *int, errorMessage string, checkedAt time.Time) (uint, error) {
	check := models.MonitorCheck{
		MonitorID:    monitorID,
		Status:       status,
		ResponseTime: responseTime,
		StatusCode:   statusCode,
		ErrorMessage: errorMessage,
		CheckedAt:    checkedAt,
	}

	if err := s.DB.Create(&check).Error; err != nil {
		return 0, err
	}

	return check.ID, nil
}

// UpdateMonitorAfterCheck writes the monitor's live fields for a completed
// probe. next_check advances regardless of the probe outcome so a failing
// monitor is retried at its normal cadence.
func (s *Store) UpdateMonitorAfterCheck(monitorID uint, status string, checkedAt time.Time, nextCheck time.Time, responseTime int) error {
	return s.DB.Model(&models.Monitor{}).
		Where("id = ?", monitorID).
		Updates(map[string]interface{}{
			"status":        status,
			"last_check":    checkedAt,
			"next_check":    nextCheck,
			"response_time": responseTime,
		}).Error
}

// OpenIncident starts a new open incident for the monitor.
func (s *Store) OpenIncident(monitorID uint, startedAt time.Time, cause string) error {
	incident := models.Incident{
		MonitorID: monitorID,
		StartedAt: startedAt,
		Cause:     cause,
		Status:    types.IncidentOpen,
	}

	return s.DB.Create(&incident).Error
}

// ResolveOpenIncident resolves the monitor's open incident. A monitor has at
// most one open incident; when none exists the update matches zero rows and
// that is not an error.
func (s *Store) ResolveOpenIncident(monitorID uint, resolvedAt time.Time) error {
	return s.DB.Model(&models.Incident{}).
		Where("monitor_id = ? AND status = ?", monitorID, types.IncidentOpen).
		Updates(map[string]interface{}{
			"status":      types.IncidentResolved,
			"resolved_at": resolvedAt,
		}).Error
}

// EnabledChannels returns the user's enabled alert channels.
func (s *Store) EnabledChannels(userID uint) ([]models.AlertChannel, error) {
	var channels []models.AlertChannel

	err := s.DB.
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&channels).Error

	if err != nil {
		return nil, err
	}

	return channels, nil
}

func (s *Store) GetUser(userID uint) (*models.User, error) {
	var user models.User

	if err := s.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// ListMonitors returns all monitors, for the read-only status surface.
func (s *Store) ListMonitors() ([]models.Monitor, error) {
	var monitorsList []models.Monitor

	if err := s.DB.Order("id ASC").Find(&monitorsList).Error; err != nil {
		return nil, err
	}

	return monitorsList, nil
}

// LastCheck returns the monitor's most recent check, or nil if it has never
// been checked.
func (s *Store) LastCheck(monitorID uint) (*models.MonitorCheck, error) {
	var check models.MonitorCheck

	err := s.DB.
		Where("monitor_id = ?", monitorID).
		Order("checked_at DESC").
		First(&check).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &check, nil
}

// UptimePercentage is the fraction of UP checks since the given time. A
// monitor with no checks in the window reports 100.
func (s *Store) UptimePercentage(monitorID uint, since time.Time) (float64, error) {
	var total, up int64

	err := s.DB.Model(&models.MonitorCheck{}).
		Where("monitor_id = ? AND checked_at > ?", monitorID, since).
		Count(&total).Error

	if err != nil {
		return 0, err
	}

	if total == 0 {
		return 100.0, nil
	}

	err = s.DB.Model(&models.MonitorCheck{}).
		Where("monitor_id = ? AND status = ? AND checked_at > ?", monitorID, types.StatusUp, since).
		Count(&up).Error

	if err != nil {
		return 0, err
	}

	return float64(up) / float64(total) * 100, nil
}
