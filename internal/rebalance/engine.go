// Package rebalance compares held positions against target allocations and
// produces the buy/sell actions needed to close the gap. The engine is a pure
// function over its inputs: no I/O, no shared state, deterministic output.
package rebalance

import "math"

// heldAggregate accumulates positions whose tickers normalize to the same key.
type heldAggregate struct {
	ticker       string
	name         string
	quantity     float64
	value        float64
	currentPrice float64
}

// Compare builds a comparison report for one account. Positions with zero
// quantity contribute nothing and are treated as absent. Allocations with no
// matching position still appear, with zero actuals, so the caller can present
// them as missing buy candidates. Percentage math degrades to zero instead of
// dividing by zero when the portfolio has no value.
func Compare(positions []Position, allocations []TargetAllocation, opts Options) Report {
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var heldOrder []string
	held := make(map[string]*heldAggregate)
	for _, pos := range positions {
		if pos.Quantity <= 0 {
			continue
		}
		key := NormalizeTicker(pos.Symbol)
		agg, ok := held[key]
		if !ok {
			agg = &heldAggregate{ticker: pos.Symbol, name: pos.Name}
			held[key] = agg
			heldOrder = append(heldOrder, key)
		}
		agg.quantity += pos.Quantity
		agg.value += pos.Quantity * pos.CurrentPrice
		agg.currentPrice = pos.CurrentPrice
	}

	targets := make(map[string]TargetAllocation)
	var targetOrder []string
	for _, alloc := range allocations {
		key := NormalizeTicker(alloc.Ticker)
		if _, ok := targets[key]; ok {
			continue
		}
		targets[key] = alloc
		targetOrder = append(targetOrder, key)
	}

	var totalActualValue float64
	for _, agg := range held {
		totalActualValue += agg.value
	}

	report := Report{
		Items:                make([]Item, 0, len(heldOrder)+len(targetOrder)),
		TotalActualValue:     totalActualValue,
		HasTargetAllocations: len(allocations) > 0,
	}
	for _, alloc := range allocations {
		report.TotalTargetPercentage += alloc.TargetPercentage
	}

	matched := make(map[string]bool)
	for _, key := range heldOrder {
		agg := held[key]
		item := Item{
			Ticker:           agg.ticker,
			Name:             agg.name,
			Quantity:         agg.quantity,
			ActualValue:      agg.value,
			CurrentPrice:     agg.currentPrice,
			ActualPercentage: safePercent(agg.value, totalActualValue),
		}

		alloc, hasTarget := targets[key]
		if hasTarget {
			matched[key] = true
			item.AllocationID = alloc.ID
			item.TargetPercentage = alloc.TargetPercentage
			item.TargetValue = totalActualValue * alloc.TargetPercentage / 100
			if alloc.Name != "" {
				item.Name = alloc.Name
			}
			item.Variance = item.ActualPercentage - item.TargetPercentage
			item.Status = classify(item.Variance, tolerance)
			item.ActionDollarAmount = item.TargetValue - item.ActualValue
			if agg.currentPrice > 0 {
				item.ActionShares = item.ActionDollarAmount / agg.currentPrice
			}
			item.ActionType = actionFor(item.Status, item.ActionDollarAmount)
		} else {
			// Held with no target: full liquidation candidate.
			item.Variance = item.ActualPercentage
			item.Status = StatusUnexpected
			item.ActionType = ActionSell
			item.ActionDollarAmount = -item.ActualValue
			item.ActionShares = -item.Quantity
		}

		report.Items = append(report.Items, item)
	}

	for _, key := range targetOrder {
		if matched[key] {
			continue
		}
		alloc := targets[key]
		item := Item{
			AllocationID:     alloc.ID,
			Ticker:           alloc.Ticker,
			Name:             alloc.Name,
			TargetPercentage: alloc.TargetPercentage,
			TargetValue:      totalActualValue * alloc.TargetPercentage / 100,
			Variance:         -alloc.TargetPercentage,
		}
		item.Status = classify(item.Variance, tolerance)
		item.ActionDollarAmount = item.TargetValue
		if opts.Prices != nil {
			if price, ok := opts.Prices(alloc.Ticker); ok && price > 0 {
				item.CurrentPrice = price
				item.ActionShares = item.ActionDollarAmount / price
			}
		}
		item.ActionType = actionFor(item.Status, item.ActionDollarAmount)

		report.Items = append(report.Items, item)
	}

	return report
}

// classify maps a variance to a status given the on-target band.
func classify(variance, tolerance float64) Status {
	switch {
	case math.Abs(variance) <= tolerance:
		return StatusOnTarget
	case variance > 0:
		return StatusOver
	default:
		return StatusUnder
	}
}

// actionFor derives the trade direction from a status and the signed dollar
// amount. Only on-target holdings (or a zero gap) hold.
func actionFor(status Status, amount float64) ActionType {
	if status == StatusOnTarget || amount == 0 {
		return ActionHold
	}
	if amount > 0 {
		return ActionBuy
	}
	return ActionSell
}

// safePercent returns 100*part/total, or 0 when total is 0.
func safePercent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * part / total
}
