package dto

import "wealth-backoffice/internal/rebalance"

// ComparisonResponse wraps a comparison report for the API.
type ComparisonResponse struct {
	AccountID             uint             `json:"account_id"`
	Items                 []rebalance.Item `json:"items"`
	TotalActualValue      float64          `json:"total_actual_value"`
	HasTargetAllocations  bool             `json:"has_target_allocations"`
	TotalTargetPercentage float64          `json:"total_target_percentage"`
}

// InsightsResponse carries generated commentary on a comparison report.
type InsightsResponse struct {
	AccountID uint   `json:"account_id"`
	Summary   string `json:"summary"`
}
