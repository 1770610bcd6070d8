package types

// Monitor statuses.
const (
	StatusUp     = "UP"
	StatusDown   = "DOWN"
	StatusPaused = "PAUSED"
)

// Incident statuses.
const (
	IncidentOpen     = "open"
	IncidentResolved = "resolved"
)

// Transition directions carried from the incident manager to the
// notification dispatcher.
const (
	TransitionDown = "down"
	TransitionUp   = "up"
)

// Alert channel kinds.
const (
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
	ChannelSlack   = "slack"
)
