package entity

import "time"

// Dividend is one recorded dividend payment for a ticker in an account.
type Dividend struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AccountID      uint      `gorm:"not null;index" json:"account_id"`
	Ticker         string    `gorm:"not null" json:"ticker"`
	AmountPerShare float64   `gorm:"not null" json:"amount_per_share"`
	TotalAmount    float64   `gorm:"not null" json:"total_amount"`
	ExDate         time.Time `json:"ex_date"`
	PayDate        time.Time `gorm:"not null" json:"pay_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Dividend) TableName() string {
	return "dividends"
}
