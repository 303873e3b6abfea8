package models

import "time"

type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Image       *string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	MenuItems   []MenuItem `gorm:"foreignKey:CategoryID" json:"menu_items,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryWithCount is a category row plus the number of menu items it owns.
type CategoryWithCount struct {
	Category
	MenuItemCount int64 `json:"menu_item_count"`
}
