// Package marketdata fetches security quotes from an external provider,
// preferring a configured primary provider and falling back to a free one.
// Quotes are cached in-process and, when available, in a shared Redis cache.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"wealth-backoffice/pkg/common"
	"wealth-backoffice/pkg/logger"
	redispkg "wealth-backoffice/pkg/redis"
)

// Quote is one current price observation for a ticker.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency,omitempty"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Provider fetches quotes from one upstream source.
type Provider interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}

// Config tunes the quote service.
type Config struct {
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// Service resolves quotes through cache layers and providers.
type Service struct {
	cfg      Config
	primary  Provider // nil when no API key is configured
	fallback Provider
	memCache *gocache.Cache
	redis    *redispkg.Client // optional shared cache
	log      *logger.Logger
}

// NewService creates a quote service. primary may be nil; fallback must not be.
func NewService(cfg Config, primary, fallback Provider, redisClient *redispkg.Client, log *logger.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	return &Service{
		cfg:      cfg,
		primary:  primary,
		fallback: fallback,
		memCache: gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		redis:    redisClient,
		log:      log,
	}
}

// GetQuote resolves one quote: in-process cache, then Redis, then providers.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	if cached, found := s.memCache.Get(symbol); found {
		return cached.(*Quote), nil
	}

	if quote := s.getRedisQuote(ctx, symbol); quote != nil {
		s.memCache.Set(symbol, quote, gocache.DefaultExpiration)
		return quote, nil
	}

	quote, err := s.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.memCache.Set(symbol, quote, gocache.DefaultExpiration)
	s.setRedisQuote(ctx, symbol, quote)
	return quote, nil
}

// Probe fetches a quote straight from a provider, bypassing every cache.
// Used by the health monitor so a stale cache never masks a provider outage.
func (s *Service) Probe(ctx context.Context, symbol string) error {
	_, err := s.fetch(ctx, symbol)
	return err
}

// fetch tries the primary provider when configured, then the fallback.
func (s *Service) fetch(ctx context.Context, symbol string) (*Quote, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	if s.primary != nil {
		quote, err := s.primary.GetQuote(fetchCtx, symbol)
		if err == nil {
			return quote, nil
		}
		if fetchCtx.Err() != nil {
			return nil, err
		}
		s.log.Warn("Primary quote provider failed, using fallback",
			logger.StringField("provider", s.primary.Name()),
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
	}

	quote, err := s.fallback.GetQuote(fetchCtx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote fetch failed for %s: %w", symbol, err)
	}
	return quote, nil
}

func (s *Service) getRedisQuote(ctx context.Context, symbol string) *Quote {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, fmt.Sprintf(common.RedisKeyQuote, symbol)).Bytes()
	if err != nil {
		return nil
	}
	var quote Quote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil
	}
	return &quote
}

func (s *Service) setRedisQuote(ctx context.Context, symbol string, quote *Quote) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, fmt.Sprintf(common.RedisKeyQuote, symbol), raw, s.cfg.CacheTTL).Err(); err != nil {
		s.log.Debug("Failed to cache quote in redis", logger.StringField("symbol", symbol), logger.ErrorField(err))
	}
}
