package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/server/dto"
)

type fakePlanRepo struct {
	plans map[uint]*entity.InvestmentPlan
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *entity.InvestmentPlan) error {
	plan.ID = uint(len(f.plans) + 1)
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) FindByID(ctx context.Context, id uint) (*entity.InvestmentPlan, error) {
	if plan, ok := f.plans[id]; ok {
		return plan, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlanRepo) FindByAccount(ctx context.Context, accountID uint) ([]entity.InvestmentPlan, error) {
	var out []entity.InvestmentPlan
	for _, plan := range f.plans {
		if plan.AccountID == accountID {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindDue(ctx context.Context, asOf time.Time) ([]entity.InvestmentPlan, error) {
	var out []entity.InvestmentPlan
	for _, plan := range f.plans {
		if plan.IsActive && !plan.NextRunDate.After(asOf) {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, plan *entity.InvestmentPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, id uint) error {
	delete(f.plans, id)
	return nil
}

func TestPlanService_CreatePlan_Defaults(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "TFSA", Type: entity.AccountTypeTFSA},
	}}
	plans := &fakePlanRepo{plans: map[uint]*entity.InvestmentPlan{}}
	svc := NewPlanService(plans, accounts, newTestLogger(t))

	resp, err := svc.CreatePlan(context.Background(), 1, &dto.CreatePlanRequest{
		Ticker: "vfv",
		Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "VFV", resp.Ticker)
	assert.Equal(t, string(entity.PlanTypeDCA), resp.PlanType)
	assert.Equal(t, string(entity.FrequencyMonthly), resp.Frequency)
	assert.True(t, resp.IsActive)
	assert.False(t, resp.NextRunDate.IsZero())
}

func TestPlanService_CreatePlan_Validation(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "TFSA", Type: entity.AccountTypeTFSA},
	}}
	svc := NewPlanService(&fakePlanRepo{plans: map[uint]*entity.InvestmentPlan{}}, accounts, newTestLogger(t))

	_, err := svc.CreatePlan(context.Background(), 1, &dto.CreatePlanRequest{Ticker: "VFV", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePlan(context.Background(), 1, &dto.CreatePlanRequest{Ticker: "VFV", Amount: 100, Frequency: "daily"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanService_RolloverDuePlans(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{}}
	overdue := time.Now().AddDate(0, 0, -40)
	future := time.Now().AddDate(0, 0, 3)
	plans := &fakePlanRepo{plans: map[uint]*entity.InvestmentPlan{
		1: {ID: 1, AccountID: 1, Ticker: "VFV", Frequency: entity.FrequencyMonthly, NextRunDate: overdue, IsActive: true},
		2: {ID: 2, AccountID: 1, Ticker: "XIC", Frequency: entity.FrequencyWeekly, NextRunDate: future, IsActive: true},
		3: {ID: 3, AccountID: 1, Ticker: "ZAG", Frequency: entity.FrequencyWeekly, NextRunDate: overdue, IsActive: false},
	}}
	svc := NewPlanService(plans, accounts, newTestLogger(t))

	rolled, err := svc.RolloverDuePlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	// Overdue monthly plan catches up past now, not just one interval.
	assert.True(t, plans.plans[1].NextRunDate.After(time.Now()))
	// Future and inactive plans are untouched.
	assert.Equal(t, future, plans.plans[2].NextRunDate)
	assert.Equal(t, overdue, plans.plans[3].NextRunDate)
}
