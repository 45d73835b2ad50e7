package service

import (
	"context"
	"time"

	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/pkg/logger"
)

// PriceRefreshService updates stored position prices from the quote service.
type PriceRefreshService interface {
	RefreshAllPrices(ctx context.Context) (int, error)
}

// NewPriceRefreshService creates a new price refresh service.
func NewPriceRefreshService(positionRepo repository.PositionRepository, quotes QuoteService, logger *logger.Logger) PriceRefreshService {
	return &priceRefreshService{
		positionRepo: positionRepo,
		quotes:       quotes,
		logger:       logger,
	}
}

type priceRefreshService struct {
	positionRepo repository.PositionRepository
	quotes       QuoteService
	logger       *logger.Logger
}

// RefreshAllPrices walks every stored position and writes back a fresh quote.
// Symbols sharing a ticker hit the quote cache after the first fetch. Quote
// failures are logged and skipped; the job keeps going.
func (s *priceRefreshService) RefreshAllPrices(ctx context.Context) (int, error) {
	positions, err := s.positionRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range positions {
		position := &positions[i]

		quote, err := s.quotes.GetQuote(ctx, position.Symbol)
		if err != nil {
			s.logger.Warn("Failed to fetch quote for position",
				logger.StringField("symbol", position.Symbol),
				logger.IntField("position_id", int(position.ID)),
				logger.ErrorField(err),
			)
			continue
		}
		if quote.Price <= 0 {
			continue
		}

		if err := s.positionRepo.UpdateCurrentPrice(ctx, position.ID, quote.Price, time.Now()); err != nil {
			s.logger.Error("Failed to persist refreshed price",
				logger.StringField("symbol", position.Symbol),
				logger.ErrorField(err),
			)
			continue
		}
		updated++
	}

	s.logger.Info("Price refresh completed",
		logger.IntField("positions", len(positions)),
		logger.IntField("updated", updated),
	)
	return updated, nil
}
