package dto

import (
	"encoding/json"
	"time"
)

// CreatePlanRequest is the DTO for creating an investment plan.
type CreatePlanRequest struct {
	Ticker      string          `json:"ticker"`
	PlanType    string          `json:"plan_type"`
	Amount      float64         `json:"amount"`
	Frequency   string          `json:"frequency"`
	NextRunDate time.Time       `json:"next_run_date"`
	Config      json.RawMessage `json:"config" swaggertype:"object"`
}

// UpdatePlanRequest is the DTO for updating an investment plan.
type UpdatePlanRequest struct {
	Ticker      string          `json:"ticker"`
	PlanType    string          `json:"plan_type"`
	Amount      float64         `json:"amount"`
	Frequency   string          `json:"frequency"`
	NextRunDate time.Time       `json:"next_run_date"`
	IsActive    *bool           `json:"is_active"`
	Config      json.RawMessage `json:"config" swaggertype:"object"`
}

// PlanResponse is the DTO for investment plan details.
type PlanResponse struct {
	ID          uint            `json:"id"`
	AccountID   uint            `json:"account_id"`
	Ticker      string          `json:"ticker"`
	PlanType    string          `json:"plan_type"`
	Amount      float64         `json:"amount"`
	Frequency   string          `json:"frequency"`
	NextRunDate time.Time       `json:"next_run_date"`
	IsActive    bool            `json:"is_active"`
	Config      json.RawMessage `json:"config,omitempty" swaggertype:"object"`
	CreatedAt   time.Time       `json:"created_at"`
}
