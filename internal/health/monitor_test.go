package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealth-backoffice/pkg/common"
	"wealth-backoffice/pkg/logger"
)

type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	sendErr    error
	sent       []string
}

func (f *fakeMailer) IsConfigured() bool { return f.configured }

func (f *fakeMailer) Send(to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, subject)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// flipProbe fails until flipped to healthy.
type flipProbe struct {
	mu      sync.Mutex
	healthy bool
	calls   int
}

func (p *flipProbe) probe(context.Context) ProbeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.healthy {
		return ProbeResult{Status: StatusOK, Message: "connected"}
	}
	return ProbeResult{Err: errors.New("connection refused")}
}

func (p *flipProbe) set(healthy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = healthy
}

func okProbe(context.Context) ProbeResult {
	return ProbeResult{Status: StatusOK, Message: "ok"}
}

func newTestMonitor(t *testing.T, cfg Config, probes Probes, mail *fakeMailer) *Monitor {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	if probes.MarketData == nil {
		probes.MarketData = okProbe
	}
	if probes.Email == nil {
		probes.Email = okProbe
	}
	if probes.Auth == nil {
		probes.Auth = okProbe
	}
	return NewMonitor(cfg, probes, mail, nil, log)
}

func TestMonitorAlertAfterConsecutiveFailures(t *testing.T) {
	db := &flipProbe{}
	mail := &fakeMailer{}
	m := newTestMonitor(t, Config{MaxConsecutiveErrors: 3, DBReconnectAttempts: 1, DBReconnectDelay: time.Millisecond}, Probes{Database: db.probe}, mail)

	ctx := context.Background()
	m.RunChecks(ctx)
	m.RunChecks(ctx)
	assert.Empty(t, m.Snapshot().ActiveAlerts, "no alert below the threshold")

	m.RunChecks(ctx)
	snapshot := m.Snapshot()
	require.Len(t, snapshot.ActiveAlerts, 1, "exactly one alert at the threshold")
	alert := snapshot.ActiveAlerts[0]
	assert.Equal(t, common.ServiceDatabase, alert.Service)
	assert.Equal(t, StatusError, alert.Severity)
	assert.Equal(t, StatusError, snapshot.Overall)
	assert.Equal(t, 3, snapshot.Services[common.ServiceDatabase].ConsecutiveErrors)

	// Further failures refresh the alert in place rather than duplicating it.
	m.RunChecks(ctx)
	refreshed := m.Snapshot()
	require.Len(t, refreshed.ActiveAlerts, 1)
	assert.Equal(t, alert.ID, refreshed.ActiveAlerts[0].ID)

	// The next success clears the alert and resets the counter.
	db.set(true)
	m.RunChecks(ctx)
	recovered := m.Snapshot()
	assert.Empty(t, recovered.ActiveAlerts)
	assert.Equal(t, 0, recovered.Services[common.ServiceDatabase].ConsecutiveErrors)
	assert.Equal(t, StatusOK, recovered.Services[common.ServiceDatabase].Status)
}

func TestMonitorAcknowledgeUnknownID(t *testing.T) {
	m := newTestMonitor(t, Config{}, Probes{Database: okProbe}, &fakeMailer{})
	m.RunChecks(context.Background())

	before := m.Snapshot()
	assert.False(t, m.Acknowledge("no-such-id"))
	assert.Equal(t, before.Services, m.Snapshot().Services)
}

func TestMonitorAcknowledgeHidesAlertFromSnapshot(t *testing.T) {
	db := &flipProbe{}
	m := newTestMonitor(t, Config{MaxConsecutiveErrors: 1, DBReconnectAttempts: 1, DBReconnectDelay: time.Millisecond}, Probes{Database: db.probe}, &fakeMailer{})

	ctx := context.Background()
	m.RunChecks(ctx)
	snapshot := m.Snapshot()
	require.Len(t, snapshot.ActiveAlerts, 1)

	assert.True(t, m.Acknowledge(snapshot.ActiveAlerts[0].ID))
	assert.Empty(t, m.Snapshot().ActiveAlerts)
	assert.Equal(t, StatusError, m.Snapshot().Overall, "service itself is still failing")
}

func TestMonitorEmailCooldown(t *testing.T) {
	db := &flipProbe{}
	mail := &fakeMailer{configured: true}
	m := newTestMonitor(t, Config{
		MaxConsecutiveErrors: 1,
		AlertCooldown:        5 * time.Minute,
		AlertRecipients:      []string{"ops@example.com"},
		DBReconnectAttempts:  1,
		DBReconnectDelay:     time.Millisecond,
	}, Probes{Database: db.probe}, mail)

	current := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	ctx := context.Background()
	m.RunChecks(ctx)
	assert.Equal(t, 1, mail.sentCount(), "first alert cycle sends email")

	// Many cycles inside the cooldown window: no further email.
	for i := 0; i < 5; i++ {
		current = current.Add(30 * time.Second)
		m.RunChecks(ctx)
	}
	assert.Equal(t, 1, mail.sentCount())

	// Past the cooldown the next cycle may send again.
	current = current.Add(5 * time.Minute)
	m.RunChecks(ctx)
	assert.Equal(t, 2, mail.sentCount())
}

func TestMonitorFailedEmailDoesNotAdvanceCooldown(t *testing.T) {
	db := &flipProbe{}
	mail := &fakeMailer{configured: true, sendErr: errors.New("smtp down")}
	m := newTestMonitor(t, Config{
		MaxConsecutiveErrors: 1,
		AlertCooldown:        5 * time.Minute,
		AlertRecipients:      []string{"ops@example.com"},
		DBReconnectAttempts:  1,
		DBReconnectDelay:     time.Millisecond,
	}, Probes{Database: db.probe}, mail)

	ctx := context.Background()
	m.RunChecks(ctx)
	assert.Equal(t, 0, mail.sentCount())

	// Transport recovers; the very next cycle sends because the failed
	// attempt never moved the cooldown timestamp.
	mail.sendErr = nil
	m.RunChecks(ctx)
	assert.Equal(t, 1, mail.sentCount())
}

func TestMonitorUnconfiguredMailerSkipsSilently(t *testing.T) {
	db := &flipProbe{}
	mail := &fakeMailer{configured: false}
	m := newTestMonitor(t, Config{MaxConsecutiveErrors: 1, AlertRecipients: []string{"ops@example.com"}, DBReconnectAttempts: 1, DBReconnectDelay: time.Millisecond}, Probes{Database: db.probe}, mail)

	m.RunChecks(context.Background())
	assert.Equal(t, 0, mail.sentCount())
	assert.Len(t, m.Snapshot().ActiveAlerts, 1, "alert state is unaffected by the skipped email")
}

func TestMonitorReconnectRecoversDatabase(t *testing.T) {
	db := &flipProbe{}
	m := newTestMonitor(t, Config{
		MaxConsecutiveErrors: 3,
		DBReconnectAttempts:  3,
		DBReconnectDelay:     time.Millisecond,
	}, Probes{Database: db.probe}, &fakeMailer{})

	ctx := context.Background()
	m.RunChecks(ctx)
	m.RunChecks(ctx) // second consecutive failure triggers the reconnect loop

	// Let the reconnect goroutine run; it flips to healthy on its next try.
	db.set(true)
	require.Eventually(t, func() bool {
		s := m.Snapshot().Services[common.ServiceDatabase]
		return s.Status == StatusOK && s.ConsecutiveErrors == 0
	}, 2*time.Second, 5*time.Millisecond)

	assert.False(t, m.isReconnecting.Load())
}

func TestMonitorReconnectExhaustionLeavesError(t *testing.T) {
	db := &flipProbe{}
	m := newTestMonitor(t, Config{
		MaxConsecutiveErrors: 2,
		DBReconnectAttempts:  2,
		DBReconnectDelay:     time.Millisecond,
	}, Probes{Database: db.probe}, &fakeMailer{})

	ctx := context.Background()
	m.RunChecks(ctx)
	m.RunChecks(ctx)

	require.Eventually(t, func() bool {
		return !m.isReconnecting.Load()
	}, 2*time.Second, 5*time.Millisecond)

	s := m.Snapshot().Services[common.ServiceDatabase]
	assert.Equal(t, StatusError, s.Status)
	assert.NotEmpty(t, m.Snapshot().ActiveAlerts)
}

func TestMonitorStartIsIdempotentAndStops(t *testing.T) {
	m := newTestMonitor(t, Config{CheckInterval: time.Hour}, Probes{Database: okProbe}, &fakeMailer{})

	ctx := context.Background()
	m.Start(ctx)
	m.Start(ctx) // no-op
	assert.NotEmpty(t, m.Snapshot().Services, "initial check ran immediately")

	m.Stop()
	m.Stop() // safe when already stopped
}

func TestMonitorOverallIsWorstService(t *testing.T) {
	warn := func(context.Context) ProbeResult {
		return ProbeResult{Status: StatusWarning, Message: "slow"}
	}
	m := newTestMonitor(t, Config{}, Probes{Database: okProbe, MarketData: warn}, &fakeMailer{})
	m.RunChecks(context.Background())

	snapshot := m.Snapshot()
	assert.Equal(t, StatusWarning, snapshot.Overall)
	assert.Equal(t, StatusOK, snapshot.Services[common.ServiceDatabase].Status)
}
