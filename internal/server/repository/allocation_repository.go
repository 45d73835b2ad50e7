package repository

import (
	"context"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// AllocationRepository defines the interface for target allocation data operations.
type AllocationRepository interface {
	Create(ctx context.Context, allocation *entity.TargetAllocation) error
	FindByID(ctx context.Context, id uint) (*entity.TargetAllocation, error)
	FindByAccount(ctx context.Context, accountID uint) ([]entity.TargetAllocation, error)
	Update(ctx context.Context, allocation *entity.TargetAllocation) error
	Delete(ctx context.Context, id uint) error
}

// NewAllocationRepository creates a new GORM-based allocation repository.
func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

type allocationRepository struct {
	db *gorm.DB
}

func (r *allocationRepository) Create(ctx context.Context, allocation *entity.TargetAllocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

func (r *allocationRepository) FindByID(ctx context.Context, id uint) (*entity.TargetAllocation, error) {
	var allocation entity.TargetAllocation
	if err := r.db.WithContext(ctx).First(&allocation, id).Error; err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *allocationRepository) FindByAccount(ctx context.Context, accountID uint) ([]entity.TargetAllocation, error) {
	var allocations []entity.TargetAllocation
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("target_percentage desc").Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

func (r *allocationRepository) Update(ctx context.Context, allocation *entity.TargetAllocation) error {
	return r.db.WithContext(ctx).Save(allocation).Error
}

func (r *allocationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.TargetAllocation{}, id).Error
}
