package repository

import (
	"context"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
	FindAll(ctx context.Context, householdID uint) ([]entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uint) error
}

// NewAccountRepository creates a new GORM-based account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAll lists accounts, optionally filtered to one household.
func (r *accountRepository) FindAll(ctx context.Context, householdID uint) ([]entity.Account, error) {
	query := r.db.WithContext(ctx)
	if householdID != 0 {
		query = query.Where("household_id = ?", householdID)
	}
	var accounts []entity.Account
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete removes an account with its positions, allocations, plans and dividends.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&entity.Position{}, &entity.TargetAllocation{}, &entity.InvestmentPlan{}, &entity.Dividend{}} {
			if err := tx.Where("account_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Account{}, id).Error
	})
}
