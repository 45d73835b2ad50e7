package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/marketdata"
	"wealth-backoffice/internal/rebalance"
	"wealth-backoffice/pkg/logger"
)

type fakeAccountRepo struct {
	accounts map[uint]*entity.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	if account, ok := f.accounts[id]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindAll(ctx context.Context, householdID uint) ([]entity.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error { return nil }
func (f *fakeAccountRepo) Delete(ctx context.Context, id uint) error                 { return nil }

type fakePositionRepo struct {
	positions []entity.Position
}

func (f *fakePositionRepo) Create(ctx context.Context, position *entity.Position) error { return nil }

func (f *fakePositionRepo) FindByID(ctx context.Context, id uint) (*entity.Position, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePositionRepo) FindByAccount(ctx context.Context, accountID uint) ([]entity.Position, error) {
	var out []entity.Position
	for _, p := range f.positions {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) FindAll(ctx context.Context) ([]entity.Position, error) {
	return f.positions, nil
}

func (f *fakePositionRepo) Update(ctx context.Context, position *entity.Position) error { return nil }

func (f *fakePositionRepo) UpdateCurrentPrice(ctx context.Context, id uint, price float64, at time.Time) error {
	return nil
}

func (f *fakePositionRepo) Delete(ctx context.Context, id uint) error { return nil }

type fakeAllocationRepo struct {
	allocations []entity.TargetAllocation
}

func (f *fakeAllocationRepo) Create(ctx context.Context, allocation *entity.TargetAllocation) error {
	f.allocations = append(f.allocations, *allocation)
	return nil
}

func (f *fakeAllocationRepo) FindByID(ctx context.Context, id uint) (*entity.TargetAllocation, error) {
	for i := range f.allocations {
		if f.allocations[i].ID == id {
			return &f.allocations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAllocationRepo) FindByAccount(ctx context.Context, accountID uint) ([]entity.TargetAllocation, error) {
	var out []entity.TargetAllocation
	for _, a := range f.allocations {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) Update(ctx context.Context, allocation *entity.TargetAllocation) error {
	return nil
}

func (f *fakeAllocationRepo) Delete(ctx context.Context, id uint) error { return nil }

type fakeQuoteService struct {
	prices map[string]float64
}

func (f *fakeQuoteService) GetQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if price, ok := f.prices[symbol]; ok {
		return &marketdata.Quote{Symbol: symbol, Price: price, Source: "fake"}, nil
	}
	return nil, assert.AnError
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestComparisonService_Compare(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "Core RRSP", Type: entity.AccountTypeRRSP},
	}}
	positions := &fakePositionRepo{positions: []entity.Position{
		{ID: 1, AccountID: 1, Symbol: "AAPL", Quantity: 10, CurrentPrice: 150},
		{ID: 2, AccountID: 1, Symbol: "MSFT", Quantity: 5, CurrentPrice: 100},
	}}
	allocations := &fakeAllocationRepo{allocations: []entity.TargetAllocation{
		{ID: 11, AccountID: 1, Ticker: "AAPL", TargetPercentage: 50},
		{ID: 12, AccountID: 1, Ticker: "MSFT", TargetPercentage: 50},
	}}

	svc := NewComparisonService(positions, allocations, accounts, nil, nil, 2.0, newTestLogger(t))

	resp, err := svc.Compare(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), resp.AccountID)
	assert.InDelta(t, 2000.0, resp.TotalActualValue, 1e-9)
	assert.True(t, resp.HasTargetAllocations)
	require.Len(t, resp.Items, 2)

	byTicker := map[string]rebalance.Item{}
	for _, item := range resp.Items {
		byTicker[item.Ticker] = item
	}
	assert.Equal(t, rebalance.StatusOver, byTicker["AAPL"].Status)
	assert.Equal(t, rebalance.StatusUnder, byTicker["MSFT"].Status)
	assert.Equal(t, "11", byTicker["AAPL"].AllocationID)
}

func TestComparisonService_Compare_UnknownAccount(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{}}
	svc := NewComparisonService(&fakePositionRepo{}, &fakeAllocationRepo{}, accounts, nil, nil, 2.0, newTestLogger(t))

	_, err := svc.Compare(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestComparisonService_CompareMissing(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "TFSA", Type: entity.AccountTypeTFSA},
	}}
	positions := &fakePositionRepo{positions: []entity.Position{
		{ID: 1, AccountID: 1, Symbol: "XIC.TO", Quantity: 100, CurrentPrice: 30},
	}}
	allocations := &fakeAllocationRepo{allocations: []entity.TargetAllocation{
		{ID: 21, AccountID: 1, Ticker: "XIC", TargetPercentage: 60},
		{ID: 22, AccountID: 1, Ticker: "VFV", TargetPercentage: 40},
	}}
	quotes := &fakeQuoteService{prices: map[string]float64{"VFV": 120}}

	svc := NewComparisonService(positions, allocations, accounts, nil, quotes, 2.0, newTestLogger(t))

	resp, err := svc.CompareMissing(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, "VFV", item.Ticker)
	assert.Equal(t, rebalance.ActionBuy, item.ActionType)
	// 40% of $3000 at $120/share
	assert.InDelta(t, 1200.0, item.ActionDollarAmount, 1e-9)
	assert.InDelta(t, 10.0, item.ActionShares, 1e-9)
	// full report totals are preserved on the filtered view
	assert.InDelta(t, 3000.0, resp.TotalActualValue, 1e-9)
}

func TestComparisonService_Insights_NotConfigured(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "TFSA", Type: entity.AccountTypeTFSA},
	}}
	svc := NewComparisonService(&fakePositionRepo{}, &fakeAllocationRepo{}, accounts, nil, nil, 2.0, newTestLogger(t))

	_, err := svc.GenerateInsights(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInsightsUnavailable)
}
