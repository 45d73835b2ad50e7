// Package health runs periodic probes against the service's external
// dependencies, tracks consecutive failures per dependency, raises and clears
// alerts, attempts bounded database reconnection and rate-limits outbound
// alert email. State lives on a Monitor instance, never in package globals,
// so tests can run monitors side by side.
package health

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"wealth-backoffice/pkg/common"
	"wealth-backoffice/pkg/logger"
	"wealth-backoffice/pkg/mailer"
	"wealth-backoffice/pkg/telegram"
)

// Probes is the set of dependency checks the monitor drives. Database and
// MarketData are latency-bound I/O and run concurrently; Email and Auth are
// pure configuration inspection and run inline.
type Probes struct {
	Database   Probe
	MarketData Probe
	Email      Probe
	Auth       Probe
}

// Monitor owns the health state for one process.
type Monitor struct {
	cfg      Config
	probes   Probes
	mail     mailer.Mailer
	notifier telegram.Notifier
	log      *logger.Logger
	now      func() time.Time

	mu                 sync.Mutex
	services           map[string]*ServiceStatus
	alerts             []*Alert
	lastAlertEmailSent time.Time
	running            bool
	stop               chan struct{}

	isReconnecting atomic.Bool
}

// NewMonitor creates a monitor. The notifier may be a noop client; the mailer
// may be unconfigured, in which case alert email is skipped with a debug log.
func NewMonitor(cfg Config, probes Probes, mail mailer.Mailer, notifier telegram.Notifier, log *logger.Logger) *Monitor {
	return &Monitor{
		cfg:      cfg.withDefaults(),
		probes:   probes,
		mail:     mail,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		services: make(map[string]*ServiceStatus),
	}
}

// Start runs one check immediately and then schedules periodic checks.
// Calling Start on a running monitor is a logged no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		m.log.Info("Health monitor already running")
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	m.log.Info("Starting health monitor", logger.Field("interval", m.cfg.CheckInterval.String()))
	m.RunChecks(ctx)

	go func() {
		ticker := time.NewTicker(m.cfg.CheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				m.log.Info("Health monitor stopping")
				return
			case <-stop:
				m.log.Info("Health monitor stopped")
				return
			case <-ticker.C:
				m.RunChecks(ctx)
			}
		}
	}()
}

// Stop cancels future scheduled checks. It does not abort a check already in
// flight. Safe to call when not running.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stop)
}

// RunChecks executes one full probe cycle: database and market data
// concurrently, email and auth inline, then alert bookkeeping and the
// cooldown-gated notification email. Exported so tests can drive cycles
// deterministically instead of waiting on the ticker.
func (m *Monitor) RunChecks(ctx context.Context) {
	var wg sync.WaitGroup
	var dbResult, marketResult ProbeResult

	wg.Add(2)
	go func() {
		defer wg.Done()
		dbResult = m.runProbe(ctx, common.ServiceDatabase, m.probes.Database)
	}()
	go func() {
		defer wg.Done()
		marketResult = m.runProbe(ctx, common.ServiceMarketData, m.probes.MarketData)
	}()
	wg.Wait()

	emailResult := m.runProbe(ctx, common.ServiceEmail, m.probes.Email)
	authResult := m.runProbe(ctx, common.ServiceAuth, m.probes.Auth)

	m.applyResult(common.ServiceDatabase, dbResult)
	m.applyResult(common.ServiceMarketData, marketResult)
	m.applyResult(common.ServiceEmail, emailResult)
	m.applyResult(common.ServiceAuth, authResult)

	if dbResult.Err != nil {
		m.maybeReconnectDatabase(ctx)
	}

	m.dispatchAlertEmail()
}

// runProbe shields the cycle from a missing or panicking probe.
func (m *Monitor) runProbe(ctx context.Context, service string, probe Probe) (result ProbeResult) {
	if probe == nil {
		return ProbeResult{Status: StatusOK, Message: "not monitored"}
	}
	defer func() {
		if r := recover(); r != nil {
			result = ProbeResult{Err: fmt.Errorf("probe panicked: %v", r)}
			m.log.Error("Health probe panicked", logger.StringField("service", service), logger.Field("panic", r))
		}
	}()
	return probe(ctx)
}

// applyResult folds one probe outcome into the service's status and alert
// state under the monitor lock.
func (m *Monitor) applyResult(service string, result ProbeResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.services[service]
	if !ok {
		status = &ServiceStatus{Status: StatusOK}
		m.services[service] = status
	}

	status.LastCheck = m.now()
	status.LatencyMS = result.Latency.Milliseconds()

	if result.Err != nil {
		status.Status = StatusError
		status.Message = result.Err.Error()
		if result.Message != "" {
			status.Message = result.Message
		}
		status.ConsecutiveErrors++

		m.log.Error("Health check failed",
			logger.StringField("service", service),
			logger.IntField("consecutive_errors", status.ConsecutiveErrors),
			logger.ErrorField(result.Err),
		)

		if status.ConsecutiveErrors >= m.cfg.MaxConsecutiveErrors {
			m.raiseAlertLocked(service, StatusError, status.Message)
		}
		return
	}

	level := result.Status
	if level == "" {
		level = StatusOK
	}
	status.Status = level
	status.Message = result.Message
	status.ConsecutiveErrors = 0
	m.clearAlertsLocked(service)
}

// raiseAlertLocked creates an alert for the service, or refreshes the open
// unacknowledged one in place so repeat failures never duplicate alerts.
func (m *Monitor) raiseAlertLocked(service string, severity StatusLevel, message string) {
	for _, alert := range m.alerts {
		if alert.Service == service && !alert.Acknowledged {
			alert.Severity = severity
			alert.Message = message
			alert.Timestamp = m.now()
			return
		}
	}

	alert := &Alert{
		ID:        uuid.NewString(),
		Service:   service,
		Severity:  severity,
		Message:   message,
		Timestamp: m.now(),
	}
	m.alerts = append(m.alerts, alert)
	m.log.Warn("Health alert raised",
		logger.StringField("service", service),
		logger.StringField("alert_id", alert.ID),
		logger.StringField("message", message),
	)
}

// clearAlertsLocked drops every alert for a service; a succeeding probe clears
// regardless of acknowledgment state.
func (m *Monitor) clearAlertsLocked(service string) {
	kept := m.alerts[:0]
	for _, alert := range m.alerts {
		if alert.Service == service {
			m.log.Info("Health alert cleared",
				logger.StringField("service", service),
				logger.StringField("alert_id", alert.ID),
			)
			continue
		}
		kept = append(kept, alert)
	}
	m.alerts = kept
}

// maybeReconnectDatabase launches the bounded reconnect loop once the database
// has failed enough times in a row. The isReconnecting flag guarantees a
// single loop across overlapping check cycles.
func (m *Monitor) maybeReconnectDatabase(ctx context.Context) {
	m.mu.Lock()
	status, ok := m.services[common.ServiceDatabase]
	trigger := ok && status.ConsecutiveErrors >= reconnectTriggerThreshold
	m.mu.Unlock()

	if !trigger {
		return
	}
	if !m.isReconnecting.CompareAndSwap(false, true) {
		return
	}

	go m.reconnectDatabase(ctx)
}

// reconnectDatabase retries the database probe with linear backoff. The first
// success resets the service; exhausting every attempt leaves the service in
// error until the next scheduled cycle re-triggers this loop.
func (m *Monitor) reconnectDatabase(ctx context.Context) {
	defer m.isReconnecting.Store(false)

	for attempt := 1; attempt <= m.cfg.DBReconnectAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.cfg.DBReconnectDelay * time.Duration(attempt)):
		}

		m.log.Info("Attempting database reconnect",
			logger.IntField("attempt", attempt),
			logger.IntField("max_attempts", m.cfg.DBReconnectAttempts),
		)

		result := m.runProbe(ctx, common.ServiceDatabase, m.probes.Database)
		if result.Err == nil {
			m.applyResult(common.ServiceDatabase, result)
			m.log.Info("Database reconnected", logger.IntField("attempt", attempt))
			return
		}
	}

	m.log.Error("Database reconnect attempts exhausted",
		logger.IntField("attempts", m.cfg.DBReconnectAttempts),
	)
}

// dispatchAlertEmail sends a summary of unacknowledged error alerts, gated by
// the process-wide cooldown. A failed send is logged and does not move the
// cooldown timestamp, so the next cycle may retry.
func (m *Monitor) dispatchAlertEmail() {
	m.mu.Lock()
	var active []Alert
	for _, alert := range m.alerts {
		if !alert.Acknowledged && alert.Severity == StatusError {
			active = append(active, *alert)
		}
	}
	now := m.now()
	inCooldown := !m.lastAlertEmailSent.IsZero() && now.Sub(m.lastAlertEmailSent) < m.cfg.AlertCooldown
	recipients := m.cfg.AlertRecipients
	m.mu.Unlock()

	if len(active) == 0 {
		return
	}
	if m.mail == nil || !m.mail.IsConfigured() || len(recipients) == 0 {
		m.log.Debug("Alert email skipped: mailer not configured")
		return
	}
	if inCooldown {
		m.log.Debug("Alert email skipped: cooldown active")
		return
	}

	subject := fmt.Sprintf("[wealth-backoffice] %d service alert(s)", len(active))
	if err := m.mail.Send(recipients, subject, buildAlertEmailBody(active)); err != nil {
		m.log.Error("Failed to send alert email", logger.ErrorField(err))
		return
	}

	m.mu.Lock()
	m.lastAlertEmailSent = now
	m.mu.Unlock()
	m.log.Info("Alert email sent", logger.IntField("alerts", len(active)))

	if m.notifier != nil {
		if err := m.notifier.SendMessage(buildAlertSummaryText(active)); err != nil {
			m.log.Error("Failed to send telegram alert", logger.ErrorField(err))
		}
	}
}

// Snapshot returns a deep copy of the current health state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Snapshot{
		Overall:   StatusOK,
		Services:  make(map[string]ServiceStatus, len(m.services)),
		Timestamp: m.now(),
	}
	for name, status := range m.services {
		snapshot.Services[name] = *status
		snapshot.Overall = worstOf(snapshot.Overall, status.Status)
	}
	for _, alert := range m.alerts {
		if !alert.Acknowledged {
			snapshot.ActiveAlerts = append(snapshot.ActiveAlerts, *alert)
		}
	}
	return snapshot
}

// Acknowledge marks one alert acknowledged and reports whether the id exists.
// Acknowledgment does not stop the service from re-alerting on a fresh
// failure streak.
func (m *Monitor) Acknowledge(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, alert := range m.alerts {
		if alert.ID == id {
			alert.Acknowledged = true
			return true
		}
	}
	return false
}

func worstOf(a, b StatusLevel) StatusLevel {
	rank := map[StatusLevel]int{StatusOK: 0, StatusWarning: 1, StatusError: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

func buildAlertEmailBody(alerts []Alert) string {
	var b strings.Builder
	b.WriteString("<h2>Service alerts</h2><ul>")
	for _, alert := range alerts {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s): %s at %s</li>",
			alert.Service, alert.Severity, alert.Message, alert.Timestamp.Format(time.RFC3339))
	}
	b.WriteString("</ul>")
	return b.String()
}

func buildAlertSummaryText(alerts []Alert) string {
	var b strings.Builder
	b.WriteString("*Service alerts*\n")
	for _, alert := range alerts {
		fmt.Fprintf(&b, "- %s: %s\n", alert.Service, alert.Message)
	}
	return b.String()
}
