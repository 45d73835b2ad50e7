package entity

import "time"

// AccountType distinguishes registered, taxable and watchlist accounts.
type AccountType string

const (
	AccountTypeTaxable   AccountType = "taxable"
	AccountTypeRRSP      AccountType = "rrsp"
	AccountTypeTFSA      AccountType = "tfsa"
	AccountTypeRESP      AccountType = "resp"
	AccountTypeWatchlist AccountType = "watchlist"
)

// Account is one brokerage account inside a household. A watchlist account is
// allowed to carry target allocations summing past 100%.
type Account struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	HouseholdID uint        `gorm:"not null;index" json:"household_id"`
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null;default:taxable" json:"type"`
	Currency    string      `gorm:"not null;default:CAD" json:"currency"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsWatchlist reports whether the account tracks hypothetical holdings only.
func (a Account) IsWatchlist() bool {
	return a.Type == AccountTypeWatchlist
}
