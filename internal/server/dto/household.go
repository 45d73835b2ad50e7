package dto

import "time"

// CreateHouseholdRequest is the DTO for creating a household.
type CreateHouseholdRequest struct {
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email"`
}

// UpdateHouseholdRequest is the DTO for updating a household.
type UpdateHouseholdRequest struct {
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email"`
}

// HouseholdResponse is the DTO for household details.
type HouseholdResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	PrimaryEmail string            `json:"primary_email"`
	Accounts     []AccountResponse `json:"accounts,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
