package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"type:varchar(50);index;not null" json:"order_number"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(50);not null" json:"customer_phone"`
	CustomerAddress string      `gorm:"type:text;not null" json:"customer_address"`
	Notes           *string     `gorm:"type:text" json:"notes,omitempty"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalAmount     float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	OrderItems      []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewOrderNumber builds the order identifier from a timestamp.
func NewOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}
