package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a canteen order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

// Statuses lists every valid order status.
var Statuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusCompleted}

type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;size:36"`
	UserID     string      `json:"user_id" gorm:"not null;size:36;index"`
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status     OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice float64     `json:"total_price" gorm:"not null"`
	Items      []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID       string  `json:"id" gorm:"primaryKey;size:36"`
	OrderID  string  `json:"order_id" gorm:"not null;size:36;index"`
	FoodID   string  `json:"food_id" gorm:"not null;size:36"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"` // snapshot line price at time of order
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
