package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultAlphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageConfig holds the settings for the primary quote provider.
type AlphaVantageConfig struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// alphaVantageProvider fetches quotes from the Alpha Vantage GLOBAL_QUOTE API.
type alphaVantageProvider struct {
	cfg            AlphaVantageConfig
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewAlphaVantageProvider creates the primary provider. Returns nil when no
// API key is configured so callers can fall back to the free provider.
func NewAlphaVantageProvider(cfg AlphaVantageConfig) Provider {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAlphaVantageBaseURL
	}
	if cfg.MaxRequestPerMinute <= 0 {
		cfg.MaxRequestPerMinute = 5
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.MaxRequestPerMinute)
	return &alphaVantageProvider{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (p *alphaVantageProvider) Name() string { return "alphavantage" }

type alphaVantageQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

func (p *alphaVantageProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	if err := p.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		p.cfg.BaseURL, url.QueryEscape(symbol), p.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed alphaVantageQuoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if parsed.GlobalQuote.Price == "" {
		return nil, fmt.Errorf("alphavantage returned no quote for %s", symbol)
	}

	price, err := strconv.ParseFloat(parsed.GlobalQuote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage returned malformed price %q: %w", parsed.GlobalQuote.Price, err)
	}

	return &Quote{
		Symbol:    symbol,
		Price:     price,
		Source:    p.Name(),
		Timestamp: time.Now(),
	}, nil
}
