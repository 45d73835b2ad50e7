package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PlanType distinguishes contribution plans from profit-taking plans.
type PlanType string

const (
	PlanTypeDCA    PlanType = "dca"
	PlanTypeProfit PlanType = "profit"
)

// PlanFrequency is how often a plan fires.
type PlanFrequency string

const (
	FrequencyWeekly   PlanFrequency = "weekly"
	FrequencyBiweekly PlanFrequency = "biweekly"
	FrequencyMonthly  PlanFrequency = "monthly"
)

// InvestmentPlan is a recurring dollar-cost-averaging or profit-taking plan
// attached to one account. Config carries per-plan settings (e.g. profit
// target percent, per-run amount overrides) as free-form JSON.
type InvestmentPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AccountID   uint           `gorm:"not null;index" json:"account_id"`
	Ticker      string         `gorm:"not null" json:"ticker"`
	PlanType    PlanType       `gorm:"not null;default:dca" json:"plan_type"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Frequency   PlanFrequency  `gorm:"not null;default:monthly" json:"frequency"`
	NextRunDate time.Time      `json:"next_run_date"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	Config      datatypes.JSON `json:"config,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

// NextRunAfter advances the next run date by one frequency interval from the
// given time.
func (p InvestmentPlan) NextRunAfter(from time.Time) time.Time {
	switch p.Frequency {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	default:
		return from.AddDate(0, 1, 0)
	}
}
