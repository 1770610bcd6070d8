package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/types"
)

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Attachments []SlackAttachment `json:"attachments"`
}

func (d *Dispatcher) sendSlackAlert(cfg types.SlackConfig, monitor models.Monitor, transition, errorDetail string) error {
	color := "good"
	emoji := "✅"
	if transition == types.TransitionDown {
		color = "danger"
		emoji = "🚨"
	}

	fields := []SlackField{
		{Title: "URL", Value: monitor.URL, Short: true},
		{Title: "Status", Value: statusWord(transition), Short: true},
	}

	if transition == types.TransitionDown && errorDetail != "" {
		fields = append(fields, SlackField{Title: "Error", Value: errorDetail, Short: false})
	}

	payload := SlackWebhookRequest{
		Attachments: []SlackAttachment{
			{
				Color:     color,
				Title:     fmt.Sprintf("%s Monitor %s: %s", emoji, statusWord(transition), monitor.Name),
				Fields:    fields,
				Footer:    "Monitorly",
				Timestamp: d.now().Unix(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := d.client.Post(cfg.WebhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
