package rebalance

// Status classifies a holding against its target allocation.
type Status string

const (
	StatusOver       Status = "over"
	StatusUnder      Status = "under"
	StatusOnTarget   Status = "on-target"
	StatusUnexpected Status = "unexpected"
)

// ActionType is the trade direction needed to close the gap for a holding.
type ActionType string

const (
	ActionBuy  ActionType = "buy"
	ActionSell ActionType = "sell"
	ActionHold ActionType = "hold"
)

// Position is a held position as seen by the engine. Quantity and prices are
// assumed non-negative; validation is the caller's contract.
type Position struct {
	Symbol       string
	Name         string
	Quantity     float64
	EntryPrice   float64
	CurrentPrice float64
}

// TargetAllocation is a desired portfolio weight for one ticker.
type TargetAllocation struct {
	ID               string
	Ticker           string
	Name             string
	TargetPercentage float64
}

// Item is one row of a comparison report.
type Item struct {
	AllocationID       string     `json:"allocation_id,omitempty"`
	Ticker             string     `json:"ticker"`
	Name               string     `json:"name"`
	TargetPercentage   float64    `json:"target_percentage"`
	ActualPercentage   float64    `json:"actual_percentage"`
	Variance           float64    `json:"variance"`
	ActualValue        float64    `json:"actual_value"`
	TargetValue        float64    `json:"target_value"`
	Quantity           float64    `json:"quantity"`
	Status             Status     `json:"status"`
	ActionType         ActionType `json:"action_type"`
	ActionDollarAmount float64    `json:"action_dollar_amount"`
	ActionShares       float64    `json:"action_shares"`
	CurrentPrice       float64    `json:"current_price"`
}

// Report is the full output of a comparison run.
type Report struct {
	Items                 []Item  `json:"items"`
	TotalActualValue      float64 `json:"total_actual_value"`
	HasTargetAllocations  bool    `json:"has_target_allocations"`
	TotalTargetPercentage float64 `json:"total_target_percentage"`
}

// Missing returns the allocations that have no held position backing them:
// a filtered view of the same items, not a separate structure.
func (r Report) Missing() []Item {
	var out []Item
	for _, item := range r.Items {
		if item.TargetPercentage > 0 && item.ActualPercentage == 0 {
			out = append(out, item)
		}
	}
	return out
}

// PriceLookup resolves a current price for a ticker that has no held position.
// It may be nil, in which case missing items report zero shares.
type PriceLookup func(ticker string) (float64, bool)

// Options tunes a comparison run.
type Options struct {
	// Tolerance is the on-target band in percentage points. Values <= 0 fall
	// back to DefaultTolerance.
	Tolerance float64

	// Prices is consulted only for allocations with no matching position.
	Prices PriceLookup
}

// DefaultTolerance is the on-target band applied when none is configured.
const DefaultTolerance = 2.0
