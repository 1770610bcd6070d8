package services

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/monitorly-dev/monitorly/internal/models"
	"github.com/monitorly-dev/monitorly/internal/types"
)

// ChannelStore is the slice of the data store the dispatcher reads.
type ChannelStore interface {
	EnabledChannels(userID uint) ([]models.AlertChannel, error)
	GetUser(userID uint) (*models.User, error)
}

// EmailTransport sends one alert email or reports failure.
type EmailTransport interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher fans an alert out to every enabled channel of the monitor's
// owner. Delivery is best-effort: each channel is attempted independently and
// failures are logged, never returned to the caller.
type Dispatcher struct {
	store  ChannelStore
	email  EmailTransport // nil when SMTP is not configured
	client *http.Client
	now    func() time.Time
}

func NewDispatcher(store ChannelStore, email EmailTransport) *Dispatcher {
	return &Dispatcher{
		store: store,
		email: email,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// Dispatch sends a "down" or "up" alert for the monitor to all of its
// owner's enabled channels.
func (d *Dispatcher) Dispatch(monitor models.Monitor, transition string, errorDetail string) {
	user, err := d.store.GetUser(monitor.UserID)
	if err != nil {
		log.Printf("Failed to load user %d for monitor %d alert: %v", monitor.UserID, monitor.ID, err)
		return
	}

	channels, err := d.store.EnabledChannels(monitor.UserID)
	if err != nil {
		log.Printf("Failed to load alert channels for user %d: %v", monitor.UserID, err)
		return
	}

	log.Printf("Sending %s alert for monitor %s to %d channels", transition, monitor.Name, len(channels))

	for _, channel := range channels {
		if err := d.sendToChannel(channel, monitor, user, transition, errorDetail); err != nil {
			log.Printf("Alert channel %d (%s) failed for monitor %d: %v", channel.ID, channel.Type, monitor.ID, err)
		}
	}
}

func (d *Dispatcher) sendToChannel(channel models.AlertChannel, monitor models.Monitor, user *models.User, transition, errorDetail string) error {
	switch channel.Type {
	case types.ChannelEmail:
		var cfg types.EmailConfig
		if err := json.Unmarshal(channel.Config, &cfg); err != nil {
			return err
		}
		return d.sendEmailAlert(cfg, monitor, user, transition, errorDetail)
	case types.ChannelWebhook:
		var cfg types.WebhookConfig
		if err := json.Unmarshal(channel.Config, &cfg); err != nil {
			return err
		}
		return d.sendWebhookAlert(cfg, monitor, transition, errorDetail)
	case types.ChannelSlack:
		var cfg types.SlackConfig
		if err := json.Unmarshal(channel.Config, &cfg); err != nil {
			return err
		}
		return d.sendSlackAlert(cfg, monitor, transition, errorDetail)
	default:
		log.Printf("Alert channel type %s not implemented, skipping", channel.Type)
		return nil
	}
}
