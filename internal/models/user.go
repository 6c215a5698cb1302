package models

import (
	"time"

	"gorm.io/gorm"
)

// Role defines the actor type for a user account
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// UserAccount represents a customer or admin user
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type UserAccount struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name,omitempty"`
	Role     Role   `gorm:"default:'customer'" json:"role"`

	// IsAuthorized caches the document gate result for cheap querying.
	// It is recomputed and persisted in the same transaction as every
	// document upload or review; the gate itself always derives from
	// the live document rows.
	IsAuthorized bool `gorm:"default:false" json:"isAuthorized"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	Documents []DocumentRecord `gorm:"foreignKey:UserID" json:"documents,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for UserAccount model
func (UserAccount) TableName() string {
	return "user_accounts"
}

// IsAdmin returns true for admin actors
func (u *UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin
}
