package dto

import "time"

// CreatePositionRequest is the DTO for adding a position to an account.
type CreatePositionRequest struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`
}

// UpdatePositionRequest is the DTO for updating a position.
type UpdatePositionRequest struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`
}

// PositionResponse is the DTO for position details.
type PositionResponse struct {
	ID             uint      `json:"id"`
	AccountID      uint      `json:"account_id"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"`
	EntryPrice     float64   `json:"entry_price"`
	CurrentPrice   float64   `json:"current_price"`
	MarketValue    float64   `json:"market_value"`
	GainLoss       float64   `json:"gain_loss"`
	PriceUpdatedAt time.Time `json:"price_updated_at"`
	CreatedAt      time.Time `json:"created_at"`
}
