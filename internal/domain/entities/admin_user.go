package entities

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole represents admin panel roles
type AdminRole string

const (
	AdminRoleSuper    AdminRole = "super_admin"
	AdminRoleReviewer AdminRole = "reviewer"
)

// AdminUser represents an admin panel account
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         AdminRole  `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AdminLoginInput represents admin credentials
type AdminLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminStats aggregates the admin dashboard counters
type AdminStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	PendingKYC      int64   `json:"pendingKYC"`
	PendingPayments int64   `json:"pendingPayments"`
	ActiveLicenses  int64   `json:"activeLicenses"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
