package dto

import "time"

// CreateAllocationRequest is the DTO for adding a target allocation.
type CreateAllocationRequest struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	TargetPercentage float64 `json:"target_percentage"`
}

// UpdateAllocationRequest is the DTO for updating a target allocation.
type UpdateAllocationRequest struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	TargetPercentage float64 `json:"target_percentage"`
}

// AllocationResponse is the DTO for target allocation details.
type AllocationResponse struct {
	ID               uint      `json:"id"`
	AccountID        uint      `json:"account_id"`
	Ticker           string    `json:"ticker"`
	Name             string    `json:"name"`
	TargetPercentage float64   `json:"target_percentage"`
	CreatedAt        time.Time `json:"created_at"`
}
