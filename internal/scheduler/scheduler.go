package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/monitorly-dev/monitorly/internal/incidents"
	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/monitors"
)

const (
	DefaultInterval = time.Minute
	DefaultWorkers  = 8
)

// Store is the slice of the data store the scheduler pipeline needs.
type Store interface {
	ListDueMonitors(now time.Time) ([]models.Monitor, error)
	InsertCheck(monitorID uint, status string, responseTime int, statusCode *int, errorMessage string, checkedAt time.Time) (uint, error)
	UpdateMonitorAfterCheck(monitorID uint, status string, checkedAt time.Time, nextCheck time.Time, responseTime int) error
}

// Notifier fans an alert out to the monitor owner's channels. Implementations
// never return an error; delivery is fire-and-forget for the pipeline.
type Notifier interface {
	Dispatch(monitor models.Monitor, transition string, errorDetail string)
}

// Options tune one scheduler instance. Zero values fall back to defaults;
// Now is injectable so tests can drive ticks against a fake clock.
type Options struct {
	Interval time.Duration
	Workers  int
	Now      func() time.Time
}

// Scheduler drives the monitoring pipeline: once per tick it selects all due
// monitors and runs probe, record, incident transition and notification for
// each. A single instance is constructed and started once by process
// start-up code and stopped explicitly on shutdown.
type Scheduler struct {
	store     Store
	incidents *incidents.Manager
	notifier  Notifier

	interval time.Duration
	workers  int
	now      func() time.Time

	// inFlight holds the IDs of monitors whose cycle has not finished,
	// so a slow monitor is never selected twice across overlapping ticks.
	mu       sync.Mutex
	inFlight map[uint]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store Store, manager *incidents.Manager, notifier Notifier, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		store:     store,
		incidents: manager,
		notifier:  notifier,
		interval:  opts.Interval,
		workers:   opts.Workers,
		now:       opts.Now,
		inFlight:  make(map[uint]struct{}),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Start begins the periodic tick loop in a background goroutine.
func (s *Scheduler) Start() {
	log.Printf("Starting scheduler (tick %v, %d workers)", s.interval, s.workers)

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.RunTick(s.now())
			}
		}
	}()
}

// Stop terminates the tick loop and waits for it to exit. Checks already in
// flight run to completion.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cancel()
	<-s.done
	log.Println("Scheduler stopped")
}

// RunTick executes one scheduling cycle at the given time: query due
// monitors and fan them out to the worker pool. It returns when every
// monitor picked up this tick has completed.
func (s *Scheduler) RunTick(now time.Time) {
	due, err := s.store.ListDueMonitors(now)
	if err != nil {
		log.Printf("Failed to query due monitors, skipping tick: %v", err)
		return
	}

	if len(due) == 0 {
		return
	}

	log.Printf("Checking %d monitors...", len(due))

	jobs := make(chan models.Monitor)
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for monitor := range jobs {
				s.runMonitor(monitor)
			}
		}()
	}

	for _, monitor := range due {
		if !s.tryAcquire(monitor.ID) {
			log.Printf("Monitor %d still in flight, skipping", monitor.ID)
			continue
		}
		jobs <- monitor
	}

	close(jobs)
	wg.Wait()
}

func (s *Scheduler) tryAcquire(monitorID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[monitorID]; busy {
		return false
	}
	s.inFlight[monitorID] = struct{}{}
	return true
}

func (s *Scheduler) release(monitorID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, monitorID)
}

// runMonitor executes one monitor's full cycle. A failure here must never
// disturb the other monitors of the same tick.
func (s *Scheduler) runMonitor(monitor models.Monitor) {
	defer s.release(monitor.ID)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Monitor %d (%s): panic during check: %v", monitor.ID, monitor.Name, r)
		}
	}()

	s.executeCheck(monitor)
}

// executeCheck performs probe, record, incident transition and notification
// for one monitor, strictly in that order.
func (s *Scheduler) executeCheck(monitor models.Monitor) {
	timeout := time.Duration(monitor.TimeoutSeconds) * time.Second
	result := monitors.CheckHTTP(monitor.URL, timeout)

	now := s.now()
	previous := monitor.Status
	responseTime := int(result.Latency.Milliseconds())

	if _, err := s.store.InsertCheck(monitor.ID, result.Status, responseTime, result.StatusCode, result.ErrorDetail, now); err != nil {
		// The monitor row still advances below so the cadence holds.
		log.Printf("Failed to store check for monitor %d: %v", monitor.ID, err)
	}

	nextCheck := now.Add(time.Duration(monitor.IntervalMinutes) * time.Minute)
	if err := s.store.UpdateMonitorAfterCheck(monitor.ID, result.Status, now, nextCheck, responseTime); err != nil {
		// next_check stays stale, so the monitor is simply due again next tick.
		log.Printf("Failed to update monitor %d after check: %v", monitor.ID, err)
		return
	}

	if result.Status != previous {
		log.Printf("Monitor %s: %s -> %s", monitor.Name, previous, result.Status)
	}

	transition, err := s.incidents.HandleTransition(monitor.ID, previous, result.Status, result.ErrorDetail, now)
	if err != nil {
		log.Printf("Incident transition failed for monitor %d: %v", monitor.ID, err)
		return
	}

	if transition != "" {
		s.notifier.Dispatch(monitor, transition, result.ErrorDetail)
	}

	log.Printf("Monitor %s: %s (%dms)", monitor.Name, result.Status, responseTime)
}

// Status reports the scheduler's live configuration for the status API.
func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	inFlight := len(s.inFlight)
	s.mu.Unlock()

	return map[string]interface{}{
		"running":          s.ctx.Err() == nil,
		"interval_seconds": int(s.interval.Seconds()),
		"workers":          s.workers,
		"in_flight":        inFlight,
	}
}
