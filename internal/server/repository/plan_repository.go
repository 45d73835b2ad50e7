package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// PlanRepository defines the interface for investment plan data operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.InvestmentPlan) error
	FindByID(ctx context.Context, id uint) (*entity.InvestmentPlan, error)
	FindByAccount(ctx context.Context, accountID uint) ([]entity.InvestmentPlan, error)
	FindDue(ctx context.Context, asOf time.Time) ([]entity.InvestmentPlan, error)
	Update(ctx context.Context, plan *entity.InvestmentPlan) error
	Delete(ctx context.Context, id uint) error
}

// NewPlanRepository creates a new GORM-based plan repository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

type planRepository struct {
	db *gorm.DB
}

func (r *planRepository) Create(ctx context.Context, plan *entity.InvestmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) FindByID(ctx context.Context, id uint) (*entity.InvestmentPlan, error) {
	var plan entity.InvestmentPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindByAccount(ctx context.Context, accountID uint) ([]entity.InvestmentPlan, error) {
	var plans []entity.InvestmentPlan
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// FindDue lists active plans whose next run date is on or before asOf.
func (r *planRepository) FindDue(ctx context.Context, asOf time.Time) ([]entity.InvestmentPlan, error) {
	var plans []entity.InvestmentPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND next_run_date <= ?", true, asOf).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *entity.InvestmentPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *planRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.InvestmentPlan{}, id).Error
}
