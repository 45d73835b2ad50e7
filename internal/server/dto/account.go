package dto

import "time"

// CreateAccountRequest is the DTO for creating an account.
type CreateAccountRequest struct {
	HouseholdID uint   `json:"household_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
}

// UpdateAccountRequest is the DTO for updating an account.
type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

// AccountResponse is the DTO for account details.
type AccountResponse struct {
	ID          uint      `json:"id"`
	HouseholdID uint      `json:"household_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
