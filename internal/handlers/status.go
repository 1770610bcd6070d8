package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitorly-dev/monitorly/internal/scheduler"
	"github.com/monitorly-dev/monitorly/internal/store"
)

const uptimeWindow = 30 * 24 * time.Hour

type MonitorStatusSummary struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Status       string     `json:"status"`
	LastCheck    *time.Time `json:"last_check"`
	NextCheck    *time.Time `json:"next_check"`
	ResponseTime int        `json:"response_time"`
	Uptime       float64    `json:"uptime_percentage"`
}

type StatusResponse struct {
	Scheduler map[string]interface{} `json:"scheduler"`
	Monitors  []MonitorStatusSummary `json:"monitors"`
}

// StatusHandler exposes the read-only operational view of the pipeline. It
// publishes persisted state only; it never feeds anything back into the
// scheduler.
type StatusHandler struct {
	Store     *store.Store
	Scheduler *scheduler.Scheduler
}

func (h *StatusHandler) GetStatus(ctx *gin.Context) {
	monitorsList, err := h.Store.ListMonitors()

	if err != nil {
		log.Printf("Failed to list monitors: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve monitors"})
		return
	}

	since := time.Now().Add(-uptimeWindow)
	summaries := make([]MonitorStatusSummary, 0, len(monitorsList))

	for _, monitor := range monitorsList {
		uptime, err := h.Store.UptimePercentage(monitor.ID, since)

		if err != nil {
			log.Printf("Failed to compute uptime for monitor %d: %v", monitor.ID, err)
			uptime = 0
		}

		summaries = append(summaries, MonitorStatusSummary{
			ID:           monitor.ID,
			Name:         monitor.Name,
			URL:          monitor.URL,
			Status:       monitor.Status,
			LastCheck:    monitor.LastCheck,
			NextCheck:    monitor.NextCheck,
			ResponseTime: monitor.ResponseTime,
			Uptime:       uptime,
		})
	}

	ctx.JSON(http.StatusOK, StatusResponse{
		Scheduler: h.Scheduler.Status(),
		Monitors:  summaries,
	})
}
