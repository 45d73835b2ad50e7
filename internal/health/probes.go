package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wealth-backoffice/pkg/mailer"
)

// dbLatencyWarnThreshold is the round-trip latency above which a healthy
// database is still reported as degraded.
const dbLatencyWarnThreshold = time.Second

// DatabaseProbe issues a trivial round-trip query. Latency above the warning
// threshold degrades the status; an error surfaces as a failed probe.
func DatabaseProbe(db *gorm.DB) Probe {
	return func(ctx context.Context) ProbeResult {
		start := time.Now()
		var one int
		err := db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
		latency := time.Since(start)

		if err != nil {
			return ProbeResult{Latency: latency, Err: fmt.Errorf("database query failed: %w", err)}
		}
		if latency > dbLatencyWarnThreshold {
			return ProbeResult{
				Status:  StatusWarning,
				Message: fmt.Sprintf("slow response: %dms", latency.Milliseconds()),
				Latency: latency,
			}
		}
		return ProbeResult{Status: StatusOK, Message: "connected", Latency: latency}
	}
}

// QuoteFetcher is the slice of the market data service the probe needs.
type QuoteFetcher interface {
	Probe(ctx context.Context, symbol string) error
}

// MarketDataProbe fetches a canary symbol under a hard timeout. A timeout is
// reported distinctly from other failures.
func MarketDataProbe(quotes QuoteFetcher, canarySymbol string, timeout time.Duration) Probe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(ctx context.Context) ProbeResult {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := quotes.Probe(probeCtx, canarySymbol)
		latency := time.Since(start)

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ProbeResult{
					Latency: latency,
					Message: fmt.Sprintf("Timeout after %s fetching %s", timeout, canarySymbol),
					Err:     err,
				}
			}
			return ProbeResult{Latency: latency, Err: fmt.Errorf("quote fetch failed: %w", err)}
		}
		return ProbeResult{Status: StatusOK, Message: "provider reachable", Latency: latency}
	}
}

// EmailConfigProbe inspects mailer configuration. Pure environment
// inspection, no I/O.
func EmailConfigProbe(m mailer.Mailer) Probe {
	return func(context.Context) ProbeResult {
		if m == nil || !m.IsConfigured() {
			return ProbeResult{Status: StatusWarning, Message: "SMTP not configured"}
		}
		return ProbeResult{Status: StatusOK, Message: "SMTP configured"}
	}
}

// AuthConfigProbe verifies the session signing secret is present.
func AuthConfigProbe(sessionSecret string) Probe {
	return func(context.Context) ProbeResult {
		if sessionSecret == "" {
			return ProbeResult{Status: StatusWarning, Message: "session secret not configured"}
		}
		return ProbeResult{Status: StatusOK, Message: "configured"}
	}
}
