package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
	RoleViewer   UserRole = "viewer"
)

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string   `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// set only for role = employee
	EmployeeID *uint     `json:"employee_id"`
	Employee   *Employee `json:"employee,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}
