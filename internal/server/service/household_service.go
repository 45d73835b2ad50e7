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

// HouseholdService defines the interface for managing households.
type HouseholdService interface {
	CreateHousehold(ctx context.Context, req *dto.CreateHouseholdRequest) (*dto.HouseholdResponse, error)
	GetHouseholdByID(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
	GetAllHouseholds(ctx context.Context) ([]*dto.HouseholdResponse, error)
	UpdateHousehold(ctx context.Context, id uint, req *dto.UpdateHouseholdRequest) (*dto.HouseholdResponse, error)
	DeleteHousehold(ctx context.Context, id uint) error
}

// NewHouseholdService creates a new household service.
func NewHouseholdService(householdRepo repository.HouseholdRepository, logger *logger.Logger) HouseholdService {
	return &householdService{
		householdRepo: householdRepo,
		logger:        logger,
	}
}

type householdService struct {
	householdRepo repository.HouseholdRepository
	logger        *logger.Logger
}

func (s *householdService) CreateHousehold(ctx context.Context, req *dto.CreateHouseholdRequest) (*dto.HouseholdResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: household name is required", ErrInvalidInput)
	}

	household := &entity.Household{
		Name:         strings.TrimSpace(req.Name),
		PrimaryEmail: strings.TrimSpace(req.PrimaryEmail),
	}

	if err := s.householdRepo.Create(ctx, household); err != nil {
		return nil, err
	}

	return s.mapToHouseholdResponse(household), nil
}

func (s *householdService) GetHouseholdByID(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	household, err := s.householdRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapToHouseholdResponse(household), nil
}

func (s *householdService) GetAllHouseholds(ctx context.Context) ([]*dto.HouseholdResponse, error) {
	households, err := s.householdRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.HouseholdResponse, 0, len(households))
	for i := range households {
		responses = append(responses, s.mapToHouseholdResponse(&households[i]))
	}
	return responses, nil
}

func (s *householdService) UpdateHousehold(ctx context.Context, id uint, req *dto.UpdateHouseholdRequest) (*dto.HouseholdResponse, error) {
	household, err := s.householdRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		household.Name = strings.TrimSpace(req.Name)
	}
	if req.PrimaryEmail != "" {
		household.PrimaryEmail = strings.TrimSpace(req.PrimaryEmail)
	}

	household.Accounts = nil
	if err := s.householdRepo.Update(ctx, household); err != nil {
		return nil, err
	}

	return s.mapToHouseholdResponse(household), nil
}

func (s *householdService) DeleteHousehold(ctx context.Context, id uint) error {
	if _, err := s.householdRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.householdRepo.Delete(ctx, id)
}

func (s *householdService) mapToHouseholdResponse(household *entity.Household) *dto.HouseholdResponse {
	resp := &dto.HouseholdResponse{
		ID:           household.ID,
		Name:         household.Name,
		PrimaryEmail: household.PrimaryEmail,
		CreatedAt:    household.CreatedAt,
		UpdatedAt:    household.UpdatedAt,
	}
	for _, account := range household.Accounts {
		resp.Accounts = append(resp.Accounts, dto.AccountResponse{
			ID:          account.ID,
			HouseholdID: account.HouseholdID,
			Name:        account.Name,
			Type:        string(account.Type),
			Currency:    account.Currency,
			CreatedAt:   account.CreatedAt,
			UpdatedAt:   account.UpdatedAt,
		})
	}
	return resp
}
