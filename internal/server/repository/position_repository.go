package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// PositionRepository defines the interface for position data operations.
type PositionRepository interface {
	Create(ctx context.Context, position *entity.Position) error
	FindByID(ctx context.Context, id uint) (*entity.Position, error)
	FindByAccount(ctx context.Context, accountID uint) ([]entity.Position, error)
	FindAll(ctx context.Context) ([]entity.Position, error)
	Update(ctx context.Context, position *entity.Position) error
	UpdateCurrentPrice(ctx context.Context, id uint, price float64, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

// NewPositionRepository creates a new GORM-based position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

type positionRepository struct {
	db *gorm.DB
}

func (r *positionRepository) Create(ctx context.Context, position *entity.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *positionRepository) FindByID(ctx context.Context, id uint) (*entity.Position, error) {
	var position entity.Position
	if err := r.db.WithContext(ctx).First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *positionRepository) FindByAccount(ctx context.Context, accountID uint) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("symbol asc").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *positionRepository) FindAll(ctx context.Context) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *positionRepository) Update(ctx context.Context, position *entity.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

// UpdateCurrentPrice updates only the market price fields, used by the
// scheduled price refresh job.
func (r *positionRepository) UpdateCurrentPrice(ctx context.Context, id uint, price float64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Position{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"current_price": price, "price_updated_at": at}).Error
}

func (r *positionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Position{}, id).Error
}
