package health

import (
	"context"
	"time"
)

// StatusLevel grades a monitored service or an alert.
type StatusLevel string

const (
	StatusOK      StatusLevel = "ok"
	StatusWarning StatusLevel = "warning"
	StatusError   StatusLevel = "error"
)

// ServiceStatus is the per-service view the monitor maintains.
type ServiceStatus struct {
	Status            StatusLevel `json:"status"`
	Message           string      `json:"message"`
	LatencyMS         int64       `json:"latency_ms"`
	LastCheck         time.Time   `json:"last_check"`
	ConsecutiveErrors int         `json:"consecutive_errors"`
}

// Alert is raised once a service crosses the consecutive-failure threshold.
// There is at most one unacknowledged alert per service at any time.
type Alert struct {
	ID           string      `json:"id"`
	Service      string      `json:"service"`
	Severity     StatusLevel `json:"severity"`
	Message      string      `json:"message"`
	Timestamp    time.Time   `json:"timestamp"`
	Acknowledged bool        `json:"acknowledged"`
}

// Snapshot is the read-only aggregate the health endpoint serves.
type Snapshot struct {
	Overall      StatusLevel              `json:"overall"`
	Services     map[string]ServiceStatus `json:"services"`
	ActiveAlerts []Alert                  `json:"active_alerts"`
	Timestamp    time.Time                `json:"timestamp"`
}

// ProbeResult is the outcome of one service probe. A non-nil Err marks the
// probe failed regardless of the other fields.
type ProbeResult struct {
	Status  StatusLevel
	Message string
	Latency time.Duration
	Err     error
}

// Probe checks one external dependency. Probes must honor ctx cancellation
// and return rather than panic on any failure.
type Probe func(ctx context.Context) ProbeResult

// Config tunes the monitor. Zero values fall back to the defaults below.
type Config struct {
	CheckInterval        time.Duration
	MaxConsecutiveErrors int
	AlertCooldown        time.Duration
	DBReconnectAttempts  int
	DBReconnectDelay     time.Duration
	AlertRecipients      []string
}

const (
	defaultCheckInterval        = 30 * time.Second
	defaultMaxConsecutiveErrors = 3
	defaultAlertCooldown        = 5 * time.Minute
	defaultDBReconnectAttempts  = 5
	defaultDBReconnectDelay     = 2 * time.Second

	// reconnectTriggerThreshold is the consecutive-failure count at which the
	// bounded database reconnect loop kicks in, ahead of the alert threshold.
	reconnectTriggerThreshold = 2
)

func (c Config) withDefaults() Config {
	if c.CheckInterval <= 0 {
		c.CheckInterval = defaultCheckInterval
	}
	if c.MaxConsecutiveErrors <= 0 {
		c.MaxConsecutiveErrors = defaultMaxConsecutiveErrors
	}
	if c.AlertCooldown <= 0 {
		c.AlertCooldown = defaultAlertCooldown
	}
	if c.DBReconnectAttempts <= 0 {
		c.DBReconnectAttempts = defaultDBReconnectAttempts
	}
	if c.DBReconnectDelay <= 0 {
		c.DBReconnectDelay = defaultDBReconnectDelay
	}
	return c
}
