package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/types"
)

type WebhookMonitor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type WebhookPayload struct {
	Monitor   WebhookMonitor `json:"monitor"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func (d *Dispatcher) sendWebhookAlert(cfg types.WebhookConfig, monitor models.Monitor, transition, errorDetail string) error {
	payload := WebhookPayload{
		Monitor: WebhookMonitor{
			ID:   monitor.ID,
			Name: monitor.Name,
			URL:  monitor.URL,
		},
		Status:    transition,
		Error:     errorDetail,
		Timestamp: d.now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, cfg.URL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
