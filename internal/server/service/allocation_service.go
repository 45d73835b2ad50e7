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

// allocationSumEpsilon absorbs float drift when summing percentages.
const allocationSumEpsilon = 0.0001

// AllocationService defines the interface for managing target allocations.
type AllocationService interface {
	CreateAllocation(ctx context.Context, accountID uint, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error)
	GetAllocationsByAccount(ctx context.Context, accountID uint) ([]*dto.AllocationResponse, error)
	UpdateAllocation(ctx context.Context, id uint, req *dto.UpdateAllocationRequest) (*dto.AllocationResponse, error)
	DeleteAllocation(ctx context.Context, id uint) error
}

// NewAllocationService creates a new allocation service.
func NewAllocationService(allocationRepo repository.AllocationRepository, accountRepo repository.AccountRepository, logger *logger.Logger) AllocationService {
	return &allocationService{
		allocationRepo: allocationRepo,
		accountRepo:    accountRepo,
		logger:         logger,
	}
}

type allocationService struct {
	allocationRepo repository.AllocationRepository
	accountRepo    repository.AccountRepository
	logger         *logger.Logger
}

func (s *allocationService) CreateAllocation(ctx context.Context, accountID uint, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	if req.TargetPercentage <= 0 || req.TargetPercentage > 100 {
		return nil, fmt.Errorf("%w: target percentage must be in (0, 100]", ErrInvalidInput)
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAllocationTotal(ctx, account, 0, req.TargetPercentage); err != nil {
		return nil, err
	}

	allocation := &entity.TargetAllocation{
		AccountID:        accountID,
		Ticker:           strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Name:             strings.TrimSpace(req.Name),
		TargetPercentage: req.TargetPercentage,
	}

	if err := s.allocationRepo.Create(ctx, allocation); err != nil {
		return nil, err
	}

	return s.mapToAllocationResponse(allocation), nil
}

func (s *allocationService) GetAllocationsByAccount(ctx context.Context, accountID uint) ([]*dto.AllocationResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	allocations, err := s.allocationRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AllocationResponse, 0, len(allocations))
	for i := range allocations {
		responses = append(responses, s.mapToAllocationResponse(&allocations[i]))
	}
	return responses, nil
}

func (s *allocationService) UpdateAllocation(ctx context.Context, id uint, req *dto.UpdateAllocationRequest) (*dto.AllocationResponse, error) {
	allocation, err := s.allocationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Ticker) != "" {
		allocation.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	}
	if req.Name != "" {
		allocation.Name = strings.TrimSpace(req.Name)
	}
	if req.TargetPercentage != 0 {
		if req.TargetPercentage < 0 || req.TargetPercentage > 100 {
			return nil, fmt.Errorf("%w: target percentage must be in (0, 100]", ErrInvalidInput)
		}

		account, err := s.accountRepo.FindByID(ctx, allocation.AccountID)
		if err != nil {
			return nil, err
		}
		if err := s.checkAllocationTotal(ctx, account, allocation.ID, req.TargetPercentage); err != nil {
			return nil, err
		}
		allocation.TargetPercentage = req.TargetPercentage
	}

	if err := s.allocationRepo.Update(ctx, allocation); err != nil {
		return nil, err
	}

	return s.mapToAllocationResponse(allocation), nil
}

func (s *allocationService) DeleteAllocation(ctx context.Context, id uint) error {
	if _, err := s.allocationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.allocationRepo.Delete(ctx, id)
}

// checkAllocationTotal enforces the 100% cap for real accounts. Watchlist
// accounts can model candidate portfolios, so they are exempt.
func (s *allocationService) checkAllocationTotal(ctx context.Context, account *entity.Account, excludeID uint, newPercentage float64) error {
	if account.IsWatchlist() {
		return nil
	}

	existing, err := s.allocationRepo.FindByAccount(ctx, account.ID)
	if err != nil {
		return err
	}

	total := newPercentage
	for _, allocation := range existing {
		if allocation.ID == excludeID {
			continue
		}
		total += allocation.TargetPercentage
	}

	if total > 100+allocationSumEpsilon {
		return fmt.Errorf("%w: total would be %.2f%%", ErrAllocationOverLimit, total)
	}
	return nil
}

func (s *allocationService) mapToAllocationResponse(allocation *entity.TargetAllocation) *dto.AllocationResponse {
	return &dto.AllocationResponse{
		ID:               allocation.ID,
		AccountID:        allocation.AccountID,
		Ticker:           allocation.Ticker,
		Name:             allocation.Name,
		TargetPercentage: allocation.TargetPercentage,
		CreatedAt:        allocation.CreatedAt,
	}
}
