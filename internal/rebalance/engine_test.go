package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSingleOverweightHolding(t *testing.T) {
	positions := []Position{{Symbol: "AAPL", Quantity: 10, EntryPrice: 120, CurrentPrice: 150}}
	allocations := []TargetAllocation{{ID: "a1", Ticker: "AAPL", TargetPercentage: 50}}

	report := Compare(positions, allocations, Options{})

	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, 1500.0, report.TotalActualValue)
	assert.Equal(t, 100.0, item.ActualPercentage)
	assert.Equal(t, 50.0, item.Variance)
	assert.Equal(t, StatusOver, item.Status)
	assert.Equal(t, ActionSell, item.ActionType)
	assert.Equal(t, -750.0, item.ActionDollarAmount)
	assert.Equal(t, -5.0, item.ActionShares)
}

func TestCompareMissingAllocationWithEmptyPortfolio(t *testing.T) {
	report := Compare(nil, []TargetAllocation{{ID: "a1", Ticker: "VFV", TargetPercentage: 100}}, Options{})

	assert.Equal(t, 0.0, report.TotalActualValue)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, 0.0, item.ActualPercentage)
	assert.Equal(t, 0.0, item.ActualValue)

	missing := report.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "VFV", missing[0].Ticker)
}

func TestCompareNormalizedTickerMatch(t *testing.T) {
	positions := []Position{{Symbol: "XIC.TO", Quantity: 5, CurrentPrice: 100}}
	allocations := []TargetAllocation{{ID: "a1", Ticker: "XIC", TargetPercentage: 100}}

	report := Compare(positions, allocations, Options{})

	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, 500.0, item.ActualValue)
	assert.Equal(t, 500.0, item.TargetValue)
	assert.Equal(t, 0.0, item.Variance)
	assert.Equal(t, StatusOnTarget, item.Status)
	assert.Equal(t, ActionHold, item.ActionType)
	assert.Empty(t, report.Missing())
}

func TestCompareUnexpectedPositionFullLiquidation(t *testing.T) {
	positions := []Position{
		{Symbol: "VFV", Quantity: 10, CurrentPrice: 100},
		{Symbol: "GME", Quantity: 4, CurrentPrice: 25},
	}
	allocations := []TargetAllocation{{ID: "a1", Ticker: "VFV", TargetPercentage: 100}}

	report := Compare(positions, allocations, Options{})

	require.Len(t, report.Items, 2)
	var unexpected *Item
	for i := range report.Items {
		if report.Items[i].Ticker == "GME" {
			unexpected = &report.Items[i]
		}
	}
	require.NotNil(t, unexpected)
	assert.Equal(t, StatusUnexpected, unexpected.Status)
	assert.Equal(t, ActionSell, unexpected.ActionType)
	assert.Equal(t, -100.0, unexpected.ActionDollarAmount)
	assert.Equal(t, -4.0, unexpected.ActionShares)
	assert.Equal(t, 0.0, unexpected.TargetPercentage)
}

func TestCompareUnderweightBuysTheGap(t *testing.T) {
	positions := []Position{
		{Symbol: "VFV", Quantity: 2, CurrentPrice: 100}, // 200 of 1000 = 20%
		{Symbol: "XIC", Quantity: 8, CurrentPrice: 100}, // 800 of 1000 = 80%
	}
	allocations := []TargetAllocation{
		{ID: "a1", Ticker: "VFV", TargetPercentage: 60},
		{ID: "a2", Ticker: "XIC", TargetPercentage: 40},
	}

	report := Compare(positions, allocations, Options{})

	require.Len(t, report.Items, 2)
	vfv, xic := report.Items[0], report.Items[1]

	assert.Equal(t, StatusUnder, vfv.Status)
	assert.Equal(t, ActionBuy, vfv.ActionType)
	assert.Equal(t, 400.0, vfv.ActionDollarAmount)
	assert.Equal(t, 4.0, vfv.ActionShares)

	assert.Equal(t, StatusOver, xic.Status)
	assert.Equal(t, ActionSell, xic.ActionType)
	assert.Equal(t, -400.0, xic.ActionDollarAmount)
}

func TestCompareZeroQuantityPositionIsAbsent(t *testing.T) {
	positions := []Position{{Symbol: "VFV", Quantity: 0, CurrentPrice: 100}}
	allocations := []TargetAllocation{{ID: "a1", Ticker: "VFV", TargetPercentage: 100}}

	report := Compare(positions, allocations, Options{})

	assert.Equal(t, 0.0, report.TotalActualValue)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 0.0, report.Items[0].ActualPercentage)
	assert.Len(t, report.Missing(), 1)
}

func TestCompareZeroTotalValueYieldsZeroPercentages(t *testing.T) {
	positions := []Position{
		{Symbol: "A", Quantity: 3, CurrentPrice: 0},
		{Symbol: "B", Quantity: 7, CurrentPrice: 0},
	}
	report := Compare(positions, nil, Options{})

	for _, item := range report.Items {
		assert.Equal(t, 0.0, item.ActualPercentage, "no NaN or Inf for %s", item.Ticker)
		assert.False(t, item.ActualPercentage != item.ActualPercentage, "NaN leaked for %s", item.Ticker)
	}
}

func TestCompareDeterministic(t *testing.T) {
	positions := []Position{
		{Symbol: "VFV", Quantity: 2, CurrentPrice: 100},
		{Symbol: "XIC.TO", Quantity: 8, CurrentPrice: 100},
		{Symbol: "GME", Quantity: 1, CurrentPrice: 20},
	}
	allocations := []TargetAllocation{
		{ID: "a1", Ticker: "VFV", TargetPercentage: 50},
		{ID: "a2", Ticker: "XIC", TargetPercentage: 30},
		{ID: "a3", Ticker: "ZAG", TargetPercentage: 20},
	}

	first := Compare(positions, allocations, Options{})
	second := Compare(positions, allocations, Options{})
	assert.Equal(t, first, second)

	for _, item := range first.Items {
		if item.Status != StatusUnexpected {
			assert.InDelta(t, item.ActualPercentage-item.TargetPercentage, item.Variance, 1e-12)
		}
	}
}

func TestCompareCashPositionIsNotSpecial(t *testing.T) {
	positions := []Position{
		{Symbol: "CASH", Quantity: 500, CurrentPrice: 1},
		{Symbol: "VFV", Quantity: 5, CurrentPrice: 100},
	}
	report := Compare(positions, nil, Options{})

	assert.Equal(t, 1000.0, report.TotalActualValue)
	require.Len(t, report.Items, 2)
	assert.Equal(t, 50.0, report.Items[0].ActualPercentage)
}

func TestCompareDuplicateTickersAggregate(t *testing.T) {
	positions := []Position{
		{Symbol: "XIC.TO", Quantity: 5, CurrentPrice: 100},
		{Symbol: "xic", Quantity: 5, CurrentPrice: 100},
	}
	allocations := []TargetAllocation{{ID: "a1", Ticker: "XIC", TargetPercentage: 100}}

	report := Compare(positions, allocations, Options{})

	require.Len(t, report.Items, 1)
	assert.Equal(t, 10.0, report.Items[0].Quantity)
	assert.Equal(t, 1000.0, report.Items[0].ActualValue)
	assert.Equal(t, StatusOnTarget, report.Items[0].Status)
}

func TestCompareToleranceBand(t *testing.T) {
	positions := []Position{
		{Symbol: "VFV", Quantity: 51, CurrentPrice: 1},
		{Symbol: "XIC", Quantity: 49, CurrentPrice: 1},
	}
	allocations := []TargetAllocation{
		{ID: "a1", Ticker: "VFV", TargetPercentage: 50},
		{ID: "a2", Ticker: "XIC", TargetPercentage: 50},
	}

	// Variance of +/-1 is inside the default band.
	report := Compare(positions, allocations, Options{})
	assert.Equal(t, StatusOnTarget, report.Items[0].Status)
	assert.Equal(t, StatusOnTarget, report.Items[1].Status)
	assert.Equal(t, ActionHold, report.Items[0].ActionType)

	// A tighter band flips the classification.
	tight := Compare(positions, allocations, Options{Tolerance: 0.5})
	assert.Equal(t, StatusOver, tight.Items[0].Status)
	assert.Equal(t, StatusUnder, tight.Items[1].Status)
}

func TestCompareMissingItemUsesPriceLookup(t *testing.T) {
	positions := []Position{{Symbol: "VFV", Quantity: 10, CurrentPrice: 100}}
	allocations := []TargetAllocation{
		{ID: "a1", Ticker: "VFV", TargetPercentage: 50},
		{ID: "a2", Ticker: "ZAG", TargetPercentage: 50},
	}
	prices := func(ticker string) (float64, bool) {
		if ticker == "ZAG" {
			return 25, true
		}
		return 0, false
	}

	report := Compare(positions, allocations, Options{Prices: prices})

	missing := report.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "ZAG", missing[0].Ticker)
	assert.Equal(t, 500.0, missing[0].ActionDollarAmount)
	assert.Equal(t, 20.0, missing[0].ActionShares)
	assert.Equal(t, ActionBuy, missing[0].ActionType)
	assert.Equal(t, StatusUnder, missing[0].Status)
}

func TestCompareAggregates(t *testing.T) {
	report := Compare(nil, nil, Options{})
	assert.False(t, report.HasTargetAllocations)
	assert.Empty(t, report.Items)

	report = Compare(nil, []TargetAllocation{
		{ID: "a1", Ticker: "VFV", TargetPercentage: 60},
		{ID: "a2", Ticker: "XIC", TargetPercentage: 55},
	}, Options{})
	assert.True(t, report.HasTargetAllocations)
	assert.Equal(t, 115.0, report.TotalTargetPercentage)
}
