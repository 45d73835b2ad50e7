package repository

import (
	"context"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// HouseholdRepository defines the interface for household data operations.
type HouseholdRepository interface {
	Create(ctx context.Context, household *entity.Household) error
	FindByID(ctx context.Context, id uint) (*entity.Household, error)
	FindAll(ctx context.Context) ([]entity.Household, error)
	Update(ctx context.Context, household *entity.Household) error
	Delete(ctx context.Context, id uint) error
}

// NewHouseholdRepository creates a new GORM-based household repository.
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

type householdRepository struct {
	db *gorm.DB
}

func (r *householdRepository) Create(ctx context.Context, household *entity.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *householdRepository) FindByID(ctx context.Context, id uint) (*entity.Household, error) {
	var household entity.Household
	if err := r.db.WithContext(ctx).Preload("Accounts").First(&household, id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) FindAll(ctx context.Context) ([]entity.Household, error) {
	var households []entity.Household
	if err := r.db.WithContext(ctx).Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (r *householdRepository) Update(ctx context.Context, household *entity.Household) error {
	return r.db.WithContext(ctx).Save(household).Error
}

// Delete removes a household and everything hanging off its accounts.
func (r *householdRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountIDs []uint
		if err := tx.Model(&entity.Account{}).Where("household_id = ?", id).Pluck("id", &accountIDs).Error; err != nil {
			return err
		}
		if len(accountIDs) > 0 {
			for _, model := range []interface{}{&entity.Position{}, &entity.TargetAllocation{}, &entity.InvestmentPlan{}, &entity.Dividend{}} {
				if err := tx.Where("account_id IN ?", accountIDs).Delete(model).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&entity.Account{}, accountIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Household{}, id).Error
	})
}
