package dto

import "time"

// CreateDividendRequest is the DTO for recording a dividend payment.
type CreateDividendRequest struct {
	Ticker         string    `json:"ticker"`
	AmountPerShare float64   `json:"amount_per_share"`
	TotalAmount    float64   `json:"total_amount"`
	ExDate         time.Time `json:"ex_date"`
	PayDate        time.Time `json:"pay_date"`
}

// DividendResponse is the DTO for dividend details.
type DividendResponse struct {
	ID             uint      `json:"id"`
	AccountID      uint      `json:"account_id"`
	Ticker         string    `json:"ticker"`
	AmountPerShare float64   `json:"amount_per_share"`
	TotalAmount    float64   `json:"total_amount"`
	ExDate         time.Time `json:"ex_date"`
	PayDate        time.Time `json:"pay_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// DividendTickerSummary aggregates dividends received for one ticker.
type DividendTickerSummary struct {
	Ticker      string    `json:"ticker"`
	TotalAmount float64   `json:"total_amount"`
	Payments    int       `json:"payments"`
	LastPayDate time.Time `json:"last_pay_date"`
}

// DividendSummaryResponse is the per-account dividend rollup.
type DividendSummaryResponse struct {
	AccountID   uint                    `json:"account_id"`
	TotalAmount float64                 `json:"total_amount"`
	ByTicker    []DividendTickerSummary `json:"by_ticker"`
}
