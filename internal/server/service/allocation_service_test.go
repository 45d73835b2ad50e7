package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/server/dto"
)

func TestAllocationService_Create_CapsRealAccounts(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "RRSP", Type: entity.AccountTypeRRSP},
	}}
	allocations := &fakeAllocationRepo{allocations: []entity.TargetAllocation{
		{ID: 1, AccountID: 1, Ticker: "XIC", TargetPercentage: 70},
	}}

	svc := NewAllocationService(allocations, accounts, newTestLogger(t))

	_, err := svc.CreateAllocation(context.Background(), 1, &dto.CreateAllocationRequest{
		Ticker:           "VFV",
		TargetPercentage: 40,
	})
	assert.ErrorIs(t, err, ErrAllocationOverLimit)

	resp, err := svc.CreateAllocation(context.Background(), 1, &dto.CreateAllocationRequest{
		Ticker:           "vfv",
		TargetPercentage: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "VFV", resp.Ticker)
}

func TestAllocationService_Create_WatchlistExemptFromCap(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		2: {ID: 2, Name: "Ideas", Type: entity.AccountTypeWatchlist},
	}}
	allocations := &fakeAllocationRepo{allocations: []entity.TargetAllocation{
		{ID: 1, AccountID: 2, Ticker: "XIC", TargetPercentage: 90},
	}}

	svc := NewAllocationService(allocations, accounts, newTestLogger(t))

	_, err := svc.CreateAllocation(context.Background(), 2, &dto.CreateAllocationRequest{
		Ticker:           "VFV",
		TargetPercentage: 90,
	})
	assert.NoError(t, err)
}

func TestAllocationService_Create_Validation(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint]*entity.Account{
		1: {ID: 1, Name: "RRSP", Type: entity.AccountTypeRRSP},
	}}
	svc := NewAllocationService(&fakeAllocationRepo{}, accounts, newTestLogger(t))

	_, err := svc.CreateAllocation(context.Background(), 1, &dto.CreateAllocationRequest{
		Ticker:           "",
		TargetPercentage: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateAllocation(context.Background(), 1, &dto.CreateAllocationRequest{
		Ticker:           "XIC",
		TargetPercentage: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateAllocation(context.Background(), 1, &dto.CreateAllocationRequest{
		Ticker:           "XIC",
		TargetPercentage: 101,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
