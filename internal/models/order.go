package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the delivery state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusOnGoing   OrderStatus = "OnGoing"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCanceled  OrderStatus = "Canceled"
)

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// Order is a single delivery placed by a customer
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CustomerID    uint          `gorm:"index" json:"customer_id"`
	DriverID      *uint         `gorm:"index" json:"driver_id"`
	PlacedAt      time.Time     `gorm:"index" json:"placed_at"`
	Amount        float64       `gorm:"type:decimal(15,2)" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(20);default:'Pending'" json:"status"`

	// Relationships
	Customer User  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
}
