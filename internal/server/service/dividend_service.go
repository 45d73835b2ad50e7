package service

import (
	"context"
	"fmt"
	"strings"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/pkg/logger"
)

// DividendService defines the interface for recording and summarizing dividends.
type DividendService interface {
	CreateDividend(ctx context.Context, accountID uint, req *dto.CreateDividendRequest) (*dto.DividendResponse, error)
	GetDividendsByAccount(ctx context.Context, accountID uint) ([]*dto.DividendResponse, error)
	GetDividendSummary(ctx context.Context, accountID uint) (*dto.DividendSummaryResponse, error)
	DeleteDividend(ctx context.Context, id uint) error
}

// NewDividendService creates a new dividend service.
func NewDividendService(dividendRepo repository.DividendRepository, accountRepo repository.AccountRepository, logger *logger.Logger) DividendService {
	return &dividendService{
		dividendRepo: dividendRepo,
		accountRepo:  accountRepo,
		logger:       logger,
	}
}

type dividendService struct {
	dividendRepo repository.DividendRepository
	accountRepo  repository.AccountRepository
	logger       *logger.Logger
}

func (s *dividendService) CreateDividend(ctx context.Context, accountID uint, req *dto.CreateDividendRequest) (*dto.DividendResponse, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrInvalidInput)
	}
	if req.PayDate.IsZero() {
		return nil, fmt.Errorf("%w: pay date is required", ErrInvalidInput)
	}
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	dividend := &entity.Dividend{
		AccountID:      accountID,
		Ticker:         strings.ToUpper(strings.TrimSpace(req.Ticker)),
		AmountPerShare: req.AmountPerShare,
		TotalAmount:    req.TotalAmount,
		ExDate:         req.ExDate,
		PayDate:        req.PayDate,
	}

	if err := s.dividendRepo.Create(ctx, dividend); err != nil {
		return nil, err
	}

	return s.mapToDividendResponse(dividend), nil
}

func (s *dividendService) GetDividendsByAccount(ctx context.Context, accountID uint) ([]*dto.DividendResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	dividends, err := s.dividendRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DividendResponse, 0, len(dividends))
	for i := range dividends {
		responses = append(responses, s.mapToDividendResponse(&dividends[i]))
	}
	return responses, nil
}

func (s *dividendService) GetDividendSummary(ctx context.Context, accountID uint) (*dto.DividendSummaryResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	aggregates, err := s.dividendRepo.SummarizeByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summary := &dto.DividendSummaryResponse{
		AccountID: accountID,
		ByTicker:  make([]dto.DividendTickerSummary, 0, len(aggregates)),
	}
	for _, agg := range aggregates {
		summary.TotalAmount += agg.TotalAmount
		summary.ByTicker = append(summary.ByTicker, dto.DividendTickerSummary{
			Ticker:      agg.Ticker,
			TotalAmount: agg.TotalAmount,
			Payments:    agg.Payments,
			LastPayDate: agg.LastPayDate,
		})
	}
	return summary, nil
}

func (s *dividendService) DeleteDividend(ctx context.Context, id uint) error {
	return s.dividendRepo.Delete(ctx, id)
}

func (s *dividendService) mapToDividendResponse(dividend *entity.Dividend) *dto.DividendResponse {
	return &dto.DividendResponse{
		ID:             dividend.ID,
		AccountID:      dividend.AccountID,
		Ticker:         dividend.Ticker,
		AmountPerShare: dividend.AmountPerShare,
		TotalAmount:    dividend.TotalAmount,
		ExDate:         dividend.ExDate,
		PayDate:        dividend.PayDate,
		CreatedAt:      dividend.CreatedAt,
	}
}
