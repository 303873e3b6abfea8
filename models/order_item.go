package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Order tidak diserialisasi untuk menghindari nesting rekursif
	Order      *Order    `gorm:"foreignKey:OrderID;references:ID" json:"-"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID;references:ID" json:"menu_item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	// Price is the unit price snapshot taken when the order was placed.
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oi OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
