package model

// Permission represents a capability that can be assigned to users.
// Capabilities attach directly to each user; they are not derived from the
// user's role, so two users sharing a role may hold different sets.
type Permission struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "pos_operate"
	Name string `gorm:"type:varchar(100)" json:"name"`                    // e.g., "Operate POS"
}

// Default permissions for the system
var DefaultPermissions = []Permission{
	// Point of sale
	{Code: "pos_operate", Name: "Operate POS"},
	{Code: "pos_void", Name: "Void Sale"},
	{Code: "pos_refund", Name: "Refund Sale"},
	// Inventory
	{Code: "inventory_view", Name: "View Inventory"},
	{Code: "inventory_edit", Name: "Edit Inventory"},
	// Customers
	{Code: "customer_view", Name: "View Customers"},
	{Code: "customer_edit", Name: "Edit Customers"},
	// Staff
	{Code: "staff_view", Name: "View Staff"},
	{Code: "staff_edit", Name: "Edit Staff"},
	// Reports
	{Code: "reports_view", Name: "View Reports"},
	{Code: "reports_generate", Name: "Generate Reports"},
	// Settings
	{Code: "settings_view", Name: "View Settings"},
	{Code: "settings_edit", Name: "Edit Settings"},
	// Overrides
	{Code: "price_override", Name: "Override Price"},
	{Code: "manager_approval", Name: "Manager Approval"},
}
