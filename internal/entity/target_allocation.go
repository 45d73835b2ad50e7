package entity

import "time"

// TargetAllocation is the desired weight of one ticker within an account.
type TargetAllocation struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AccountID        uint      `gorm:"not null;index" json:"account_id"`
	Ticker           string    `gorm:"not null" json:"ticker"`
	Name             string    `json:"name"`
	TargetPercentage float64   `gorm:"not null" json:"target_percentage"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TargetAllocation) TableName() string {
	return "target_allocations"
}
