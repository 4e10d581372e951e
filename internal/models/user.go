package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType represents the kind of account a user is
type UserType string

const (
	UserTypeAdmin    UserType = "Admin"
	UserTypeDriver   UserType = "Driver"
	UserTypeCustomer UserType = "Customer"
)

// Valid reports whether t is one of the known user types
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeDriver, UserTypeCustomer:
		return true
	}
	return false
}

// User is an admin, driver or customer of the delivery service
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name     string   `gorm:"type:varchar(255)" json:"name"`
	Phone    string   `gorm:"type:varchar(50)" json:"phone"`
	Email    string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	UserType UserType `gorm:"type:varchar(20);index;default:'Customer'" json:"user_type"`
}
