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

var validAccountTypes = map[entity.AccountType]bool{
	entity.AccountTypeTaxable:   true,
	entity.AccountTypeRRSP:      true,
	entity.AccountTypeTFSA:      true,
	entity.AccountTypeRESP:      true,
	entity.AccountTypeWatchlist: true,
}

// AccountService defines the interface for managing accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error)
	GetAccountByID(ctx context.Context, id uint) (*dto.AccountResponse, error)
	GetAllAccounts(ctx context.Context, householdID uint) ([]*dto.AccountResponse, error)
	UpdateAccount(ctx context.Context, id uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	DeleteAccount(ctx context.Context, id uint) error
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo repository.AccountRepository, householdRepo repository.HouseholdRepository, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepo:   accountRepo,
		householdRepo: householdRepo,
		logger:        logger,
	}
}

type accountService struct {
	accountRepo   repository.AccountRepository
	householdRepo repository.HouseholdRepository
	logger        *logger.Logger
}

func (s *accountService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	if _, err := s.householdRepo.FindByID(ctx, req.HouseholdID); err != nil {
		return nil, err
	}

	accountType := entity.AccountType(req.Type)
	if req.Type == "" {
		accountType = entity.AccountTypeTaxable
	}
	if !validAccountTypes[accountType] {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.Type)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "CAD"
	}

	account := &entity.Account{
		HouseholdID: req.HouseholdID,
		Name:        strings.TrimSpace(req.Name),
		Type:        accountType,
		Currency:    currency,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return s.mapToAccountResponse(account), nil
}

func (s *accountService) GetAccountByID(ctx context.Context, id uint) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapToAccountResponse(account), nil
}

func (s *accountService) GetAllAccounts(ctx context.Context, householdID uint) ([]*dto.AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, householdID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, s.mapToAccountResponse(&accounts[i]))
	}
	return responses, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, id uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		account.Name = strings.TrimSpace(req.Name)
	}
	if req.Type != "" {
		accountType := entity.AccountType(req.Type)
		if !validAccountTypes[accountType] {
			return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.Type)
		}
		account.Type = accountType
	}
	if req.Currency != "" {
		account.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.mapToAccountResponse(account), nil
}

func (s *accountService) DeleteAccount(ctx context.Context, id uint) error {
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.accountRepo.Delete(ctx, id)
}

func (s *accountService) mapToAccountResponse(account *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:          account.ID,
		HouseholdID: account.HouseholdID,
		Name:        account.Name,
		Type:        string(account.Type),
		Currency:    account.Currency,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
