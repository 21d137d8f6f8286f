package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleAdmin             UserRole = "admin"
	RoleStoreManager      UserRole = "store_manager"
	RoleAssistantManager  UserRole = "assistant_manager"
	RoleDepartmentManager UserRole = "department_manager"
	RoleSupervisor        UserRole = "supervisor"
	RoleCashier           UserRole = "cashier"
	RoleStockClerk        UserRole = "stock_clerk"
	RoleCustomerService   UserRole = "customer_service"
	RoleSecurity          UserRole = "security"
	RoleMaintenance       UserRole = "maintenance"
)

var AllRoles = []UserRole{
	RoleAdmin, RoleStoreManager, RoleAssistantManager, RoleDepartmentManager,
	RoleSupervisor, RoleCashier, RoleStockClerk, RoleCustomerService,
	RoleSecurity, RoleMaintenance,
}

func (r UserRole) Valid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a staff member who can sign in to the system
type User struct {
	BaseModel
	Username    string   `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Email       string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string   `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName   string   `gorm:"type:varchar(100)" json:"first_name" validate:"required"`
	LastName    string   `gorm:"type:varchar(100)" json:"last_name" validate:"required"`
	Role        UserRole `gorm:"type:varchar(30);not null" json:"role" validate:"required"`
	Department  string   `gorm:"type:varchar(100)" json:"department"`
	PhoneNumber string   `gorm:"type:varchar(20)" json:"phone_number"`

	Permissions []Permission `gorm:"many2many:user_permissions;" json:"permissions,omitempty"`

	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`                // For user presence
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasPermission checks if the user has a specific capability
func (u *User) HasPermission(code string) bool {
	for _, p := range u.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// GetPermissionCodes returns a slice of all permission codes for this user
func (u *User) GetPermissionCodes() []string {
	codes := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		codes[i] = p.Code
	}
	return codes
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID    `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Role        UserRole     `json:"role"`
	Department  string       `json:"department,omitempty"`
	PhoneNumber string       `json:"phone_number,omitempty"`
	IsActive    bool         `json:"is_active"`
	LastLogin   *time.Time   `json:"last_login,omitempty"`
	LastSeenAt  *time.Time   `json:"last_seen_at,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Department:  u.Department,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		LastSeenAt:  u.LastSeenAt,
		Permissions: u.Permissions,
	}
}
