package model

import "github.com/google/uuid"

// DayHours is one weekday entry of a store's operating hours.
// Times are HH:MM strings, kept as entered.
type DayHours struct {
	Open     string `gorm:"type:varchar(5)" json:"open"`
	Close    string `gorm:"type:varchar(5)" json:"close"`
	IsClosed bool   `gorm:"default:false" json:"is_closed"`
}

// OperatingHours holds the seven fixed weekday entries.
type OperatingHours struct {
	Monday    DayHours `gorm:"embedded;embeddedPrefix:monday_" json:"monday"`
	Tuesday   DayHours `gorm:"embedded;embeddedPrefix:tuesday_" json:"tuesday"`
	Wednesday DayHours `gorm:"embedded;embeddedPrefix:wednesday_" json:"wednesday"`
	Thursday  DayHours `gorm:"embedded;embeddedPrefix:thursday_" json:"thursday"`
	Friday    DayHours `gorm:"embedded;embeddedPrefix:friday_" json:"friday"`
	Saturday  DayHours `gorm:"embedded;embeddedPrefix:saturday_" json:"saturday"`
	Sunday    DayHours `gorm:"embedded;embeddedPrefix:sunday_" json:"sunday"`
}

// StoreLocation is a physical retail site. Transactions reference it by
// StoreID; deleting a location does not touch its ledger history.
type StoreLocation struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Region      string `gorm:"type:varchar(100)" json:"region"`

	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(50)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(50)" json:"country"`

	ManagerID *uuid.UUID `gorm:"type:uuid" json:"manager_id,omitempty"`
	Manager   *User      `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`

	IsActive       bool           `gorm:"default:true" json:"is_active"`
	OperatingHours OperatingHours `gorm:"embedded" json:"operating_hours"`
}
