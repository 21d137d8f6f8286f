package model

import "time"

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
	TierVIP      LoyaltyTier = "vip"
)

// AllTiers in ascending order of standing.
var AllTiers = []LoyaltyTier{TierBronze, TierSilver, TierGold, TierPlatinum, TierVIP}

// LoyaltyCard is owned 1:1 by its customer. Tier and points are set
// independently; no tier-from-points rule is enforced.
type LoyaltyCard struct {
	Number       string      `gorm:"type:varchar(20)" json:"number"`
	Points       int         `gorm:"default:0" json:"points" validate:"gte=0"`
	Tier         LoyaltyTier `gorm:"type:varchar(10);default:'bronze'" json:"tier" validate:"omitempty,oneof=bronze silver gold platinum vip"`
	JoinDate     *time.Time  `json:"join_date,omitempty"`
	LastActivity *time.Time  `json:"last_activity,omitempty"`
	IsActive     bool        `json:"is_active"`
}

type Customer struct {
	BaseModel
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`

	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(50)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(50)" json:"country"`

	LoyaltyCard LoyaltyCard `gorm:"embedded;embeddedPrefix:loyalty_" json:"loyalty_card"`

	// Stored aggregates kept for import compatibility. Profile reads derive
	// these from the transaction ledger instead of trusting them.
	TotalSpent        float64    `gorm:"default:0" json:"total_spent"`
	AverageOrderValue float64    `gorm:"default:0" json:"average_order_value"`
	LastVisit         *time.Time `json:"last_visit,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// FullName joins first and last name for display and search results.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
