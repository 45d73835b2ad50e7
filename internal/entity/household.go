package entity

import "time"

// Household groups the accounts belonging to one client family.
type Household struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	PrimaryEmail string    `json:"primary_email"`
	Accounts     []Account `gorm:"foreignKey:HouseholdID" json:"accounts,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Household) TableName() string {
	return "households"
}
