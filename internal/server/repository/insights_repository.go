package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/rebalance"
	"wealth-backoffice/internal/server/config"
	"wealth-backoffice/pkg/logger"
)

// InsightsRepository generates narrative commentary for a rebalancing report.
type InsightsRepository interface {
	GenerateRebalanceInsights(ctx context.Context, account *entity.Account, report *rebalance.Report) (string, error)
}

type geminiInsightsRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiInsightsRepository creates an InsightsRepository backed by the Gemini API.
func NewGeminiInsightsRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (InsightsRepository, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiInsightsRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiInsightsRepository) GenerateRebalanceInsights(ctx context.Context, account *entity.Account, report *rebalance.Report) (string, error) {
	prompt := BuildRebalanceInsightsPrompt(account, report)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		r.logger.Error("Failed to generate insights from Gemini API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}

	return strings.TrimSpace(text), nil
}
