package service

import (
	"context"

	"wealth-backoffice/internal/marketdata"
	"wealth-backoffice/internal/rebalance"
	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/pkg/logger"
)

// ComparisonService runs target-vs-actual comparisons for an account.
type ComparisonService interface {
	Compare(ctx context.Context, accountID uint) (*dto.ComparisonResponse, error)
	CompareMissing(ctx context.Context, accountID uint) (*dto.ComparisonResponse, error)
	GenerateInsights(ctx context.Context, accountID uint) (*dto.InsightsResponse, error)
}

// QuoteService is the part of the market data service the comparison needs.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
}

// NewComparisonService creates a new comparison service. quotes and insights
// may be nil; missing items then report zero shares and insights are
// unavailable.
func NewComparisonService(
	positionRepo repository.PositionRepository,
	allocationRepo repository.AllocationRepository,
	accountRepo repository.AccountRepository,
	insightsRepo repository.InsightsRepository,
	quotes QuoteService,
	tolerance float64,
	logger *logger.Logger,
) ComparisonService {
	return &comparisonService{
		positionRepo:   positionRepo,
		allocationRepo: allocationRepo,
		accountRepo:    accountRepo,
		insightsRepo:   insightsRepo,
		quotes:         quotes,
		tolerance:      tolerance,
		logger:         logger,
	}
}

type comparisonService struct {
	positionRepo   repository.PositionRepository
	allocationRepo repository.AllocationRepository
	accountRepo    repository.AccountRepository
	insightsRepo   repository.InsightsRepository
	quotes         QuoteService
	tolerance      float64
	logger         *logger.Logger
}

func (s *comparisonService) Compare(ctx context.Context, accountID uint) (*dto.ComparisonResponse, error) {
	report, err := s.runComparison(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.mapToComparisonResponse(accountID, report, report.Items), nil
}

// CompareMissing returns only the targets with no held position backing them.
func (s *comparisonService) CompareMissing(ctx context.Context, accountID uint) (*dto.ComparisonResponse, error) {
	report, err := s.runComparison(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.mapToComparisonResponse(accountID, report, report.Missing()), nil
}

func (s *comparisonService) GenerateInsights(ctx context.Context, accountID uint) (*dto.InsightsResponse, error) {
	if s.insightsRepo == nil {
		return nil, ErrInsightsUnavailable
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report, err := s.runComparison(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summary, err := s.insightsRepo.GenerateRebalanceInsights(ctx, account, report)
	if err != nil {
		return nil, err
	}

	return &dto.InsightsResponse{AccountID: accountID, Summary: summary}, nil
}

func (s *comparisonService) runComparison(ctx context.Context, accountID uint) (*rebalance.Report, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	positionRows, err := s.positionRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	allocationRows, err := s.allocationRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	positions := make([]rebalance.Position, 0, len(positionRows))
	for _, row := range positionRows {
		positions = append(positions, rebalance.Position{
			Symbol:       row.Symbol,
			Name:         row.Name,
			Quantity:     row.Quantity,
			EntryPrice:   row.EntryPrice,
			CurrentPrice: row.CurrentPrice,
		})
	}

	allocations := make([]rebalance.TargetAllocation, 0, len(allocationRows))
	for _, row := range allocationRows {
		allocations = append(allocations, rebalance.TargetAllocation{
			ID:               uintToID(row.ID),
			Ticker:           row.Ticker,
			Name:             row.Name,
			TargetPercentage: row.TargetPercentage,
		})
	}

	report := rebalance.Compare(positions, allocations, rebalance.Options{
		Tolerance: s.tolerance,
		Prices:    s.priceLookup(ctx),
	})
	return &report, nil
}

// priceLookup resolves prices for targets with no held position. Lookup
// failures degrade to "no price", they never fail the comparison.
func (s *comparisonService) priceLookup(ctx context.Context) rebalance.PriceLookup {
	if s.quotes == nil {
		return nil
	}
	return func(ticker string) (float64, bool) {
		quote, err := s.quotes.GetQuote(ctx, ticker)
		if err != nil || quote == nil || quote.Price <= 0 {
			return 0, false
		}
		return quote.Price, true
	}
}

func (s *comparisonService) mapToComparisonResponse(accountID uint, report *rebalance.Report, items []rebalance.Item) *dto.ComparisonResponse {
	if items == nil {
		items = []rebalance.Item{}
	}
	return &dto.ComparisonResponse{
		AccountID:             accountID,
		Items:                 items,
		TotalActualValue:      report.TotalActualValue,
		HasTargetAllocations:  report.HasTargetAllocations,
		TotalTargetPercentage: report.TotalTargetPercentage,
	}
}
