package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/pkg/logger"
)

// PositionService defines the interface for managing positions.
type PositionService interface {
	CreatePosition(ctx context.Context, accountID uint, req *dto.CreatePositionRequest) (*dto.PositionResponse, error)
	GetPositionsByAccount(ctx context.Context, accountID uint) ([]*dto.PositionResponse, error)
	UpdatePosition(ctx context.Context, id uint, req *dto.UpdatePositionRequest) (*dto.PositionResponse, error)
	DeletePosition(ctx context.Context, id uint) error
}

// NewPositionService creates a new position service.
func NewPositionService(positionRepo repository.PositionRepository, accountRepo repository.AccountRepository, logger *logger.Logger) PositionService {
	return &positionService{
		positionRepo: positionRepo,
		accountRepo:  accountRepo,
		logger:       logger,
	}
}

type positionService struct {
	positionRepo repository.PositionRepository
	accountRepo  repository.AccountRepository
	logger       *logger.Logger
}

func (s *positionService) CreatePosition(ctx context.Context, accountID uint, req *dto.CreatePositionRequest) (*dto.PositionResponse, error) {
	if strings.TrimSpace(req.Symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	position := &entity.Position{
		AccountID:      accountID,
		Symbol:         strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:           strings.TrimSpace(req.Name),
		Quantity:       req.Quantity,
		EntryPrice:     req.EntryPrice,
		CurrentPrice:   req.CurrentPrice,
		PriceUpdatedAt: time.Now(),
	}

	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, err
	}

	return s.mapToPositionResponse(position), nil
}

func (s *positionService) GetPositionsByAccount(ctx context.Context, accountID uint) ([]*dto.PositionResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	positions, err := s.positionRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PositionResponse, 0, len(positions))
	for i := range positions {
		responses = append(responses, s.mapToPositionResponse(&positions[i]))
	}
	return responses, nil
}

func (s *positionService) UpdatePosition(ctx context.Context, id uint, req *dto.UpdatePositionRequest) (*dto.PositionResponse, error) {
	position, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Symbol) != "" {
		position.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	}
	if req.Name != "" {
		position.Name = strings.TrimSpace(req.Name)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	position.Quantity = req.Quantity
	if req.EntryPrice > 0 {
		position.EntryPrice = req.EntryPrice
	}
	if req.CurrentPrice > 0 {
		position.CurrentPrice = req.CurrentPrice
		position.PriceUpdatedAt = time.Now()
	}

	if err := s.positionRepo.Update(ctx, position); err != nil {
		return nil, err
	}

	return s.mapToPositionResponse(position), nil
}

func (s *positionService) DeletePosition(ctx context.Context, id uint) error {
	if _, err := s.positionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.positionRepo.Delete(ctx, id)
}

func (s *positionService) mapToPositionResponse(position *entity.Position) *dto.PositionResponse {
	marketValue := position.Quantity * position.CurrentPrice
	return &dto.PositionResponse{
		ID:             position.ID,
		AccountID:      position.AccountID,
		Symbol:         position.Symbol,
		Name:           position.Name,
		Quantity:       position.Quantity,
		EntryPrice:     position.EntryPrice,
		CurrentPrice:   position.CurrentPrice,
		MarketValue:    marketValue,
		GainLoss:       marketValue - position.Quantity*position.EntryPrice,
		PriceUpdatedAt: position.PriceUpdatedAt,
		CreatedAt:      position.CreatedAt,
	}
}
