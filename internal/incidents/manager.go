package incidents

import (
	"fmt"
	"time"

	"github.com/monitorly-dev/monitorly/internal/types"
)

// IncidentStore is the slice of the data store the manager needs.
type IncidentStore interface {
	OpenIncident(monitorID uint, startedAt time.Time, cause string) error
	ResolveOpenIncident(monitorID uint, resolvedAt time.Time) error
}

// Manager derives incident transitions from consecutive monitor statuses.
type Manager struct {
	store IncidentStore
}

func NewManager(store IncidentStore) *Manager {
	return &Manager{store: store}
}

// HandleTransition persists the incident change implied by a status
// transition and reports which notification direction, if any, should fire.
// Only UP->DOWN and DOWN->UP act; everything else (unchanged status, a
// monitor resumed from PAUSED) is a no-op.
func (m *Manager) HandleTransition(monitorID uint, previous, next, errorDetail string, now time.Time) (string, error) {
	switch {
	case previous == types.StatusUp && next == types.StatusDown:
		cause := errorDetail
		if cause == "" {
			cause = "Unknown error"
		}
		if err := m.store.OpenIncident(monitorID, now, cause); err != nil {
			return "", fmt.Errorf("open incident for monitor %d: %w", monitorID, err)
		}
		return types.TransitionDown, nil

	case previous == types.StatusDown && next == types.StatusUp:
		if err := m.store.ResolveOpenIncident(monitorID, now); err != nil {
			return "", fmt.Errorf("resolve incident for monitor %d: %w", monitorID, err)
		}
		return types.TransitionUp, nil
	}

	return "", nil
}
