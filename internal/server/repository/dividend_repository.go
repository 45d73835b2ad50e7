package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
)

// DividendTickerAggregate is one row of the per-ticker dividend rollup.
type DividendTickerAggregate struct {
	Ticker      string
	TotalAmount float64
	Payments    int
	LastPayDate time.Time
}

// DividendRepository defines the interface for dividend data operations.
type DividendRepository interface {
	Create(ctx context.Context, dividend *entity.Dividend) error
	FindByAccount(ctx context.Context, accountID uint) ([]entity.Dividend, error)
	SummarizeByAccount(ctx context.Context, accountID uint) ([]DividendTickerAggregate, error)
	Delete(ctx context.Context, id uint) error
}

// NewDividendRepository creates a new GORM-based dividend repository.
func NewDividendRepository(db *gorm.DB) DividendRepository {
	return &dividendRepository{db: db}
}

type dividendRepository struct {
	db *gorm.DB
}

func (r *dividendRepository) Create(ctx context.Context, dividend *entity.Dividend) error {
	return r.db.WithContext(ctx).Create(dividend).Error
}

func (r *dividendRepository) FindByAccount(ctx context.Context, accountID uint) ([]entity.Dividend, error) {
	var dividends []entity.Dividend
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("pay_date desc").Find(&dividends).Error; err != nil {
		return nil, err
	}
	return dividends, nil
}

// SummarizeByAccount aggregates dividend totals per ticker in the database.
func (r *dividendRepository) SummarizeByAccount(ctx context.Context, accountID uint) ([]DividendTickerAggregate, error) {
	var rows []DividendTickerAggregate
	err := r.db.WithContext(ctx).Model(&entity.Dividend{}).
		Select("ticker, SUM(total_amount) AS total_amount, COUNT(*) AS payments, MAX(pay_date) AS last_pay_date").
		Where("account_id = ?", accountID).
		Group("ticker").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dividendRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Dividend{}, id).Error
}
