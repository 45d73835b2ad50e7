package entity

import "time"

// Position is a held security inside an account. Symbol may carry an exchange
// suffix (e.g. "XIC.TO"); matching against targets happens on normalized form.
type Position struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AccountID      uint      `gorm:"not null;index" json:"account_id"`
	Symbol         string    `gorm:"not null" json:"symbol"`
	Name           string    `json:"name"`
	Quantity       float64   `gorm:"not null" json:"quantity"`
	EntryPrice     float64   `gorm:"not null" json:"entry_price"`
	CurrentPrice   float64   `gorm:"not null" json:"current_price"`
	PriceUpdatedAt time.Time `json:"price_updated_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}
