package marketdata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealth-backoffice/pkg/logger"
)

type stubProvider struct {
	name  string
	price float64
	err   error
	calls atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GetQuote(_ context.Context, symbol string) (*Quote, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &Quote{Symbol: symbol, Price: s.price, Source: s.name, Timestamp: time.Now()}, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestGetQuotePrefersPrimary(t *testing.T) {
	primary := &stubProvider{name: "primary", price: 101.5}
	fallback := &stubProvider{name: "fallback", price: 99}
	svc := NewService(Config{}, primary, fallback, nil, newTestLogger(t))

	quote, err := svc.GetQuote(context.Background(), "VFV.TO")
	require.NoError(t, err)
	assert.Equal(t, 101.5, quote.Price)
	assert.Equal(t, "primary", quote.Source)
	assert.Equal(t, int32(0), fallback.calls.Load())
}

func TestGetQuoteFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("rate limited")}
	fallback := &stubProvider{name: "fallback", price: 99}
	svc := NewService(Config{}, primary, fallback, nil, newTestLogger(t))

	quote, err := svc.GetQuote(context.Background(), "VFV.TO")
	require.NoError(t, err)
	assert.Equal(t, "fallback", quote.Source)
}

func TestGetQuoteUsesFallbackWhenNoPrimaryConfigured(t *testing.T) {
	fallback := &stubProvider{name: "fallback", price: 42}
	svc := NewService(Config{}, nil, fallback, nil, newTestLogger(t))

	quote, err := svc.GetQuote(context.Background(), "XIC.TO")
	require.NoError(t, err)
	assert.Equal(t, 42.0, quote.Price)
}

func TestGetQuoteCachesInProcess(t *testing.T) {
	fallback := &stubProvider{name: "fallback", price: 42}
	svc := NewService(Config{CacheTTL: time.Minute}, nil, fallback, nil, newTestLogger(t))

	ctx := context.Background()
	_, err := svc.GetQuote(ctx, "XIC.TO")
	require.NoError(t, err)
	_, err = svc.GetQuote(ctx, "XIC.TO")
	require.NoError(t, err)

	assert.Equal(t, int32(1), fallback.calls.Load(), "second lookup served from cache")
}

func TestGetQuoteErrorWhenAllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("boom")}
	fallback := &stubProvider{name: "fallback", err: errors.New("down")}
	svc := NewService(Config{}, primary, fallback, nil, newTestLogger(t))

	_, err := svc.GetQuote(context.Background(), "XIC.TO")
	assert.Error(t, err)
}

func TestProbeBypassesCache(t *testing.T) {
	fallback := &stubProvider{name: "fallback", price: 42}
	svc := NewService(Config{CacheTTL: time.Minute}, nil, fallback, nil, newTestLogger(t))

	ctx := context.Background()
	_, err := svc.GetQuote(ctx, "XIC.TO")
	require.NoError(t, err)

	require.NoError(t, svc.Probe(ctx, "XIC.TO"))
	assert.Equal(t, int32(2), fallback.calls.Load(), "probe must hit the provider")
}

func TestNewAlphaVantageProviderRequiresKey(t *testing.T) {
	assert.Nil(t, NewAlphaVantageProvider(AlphaVantageConfig{}))
	assert.NotNil(t, NewAlphaVantageProvider(AlphaVantageConfig{APIKey: "demo"}))
}
