package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool      `gorm:"not null" json:"available"`
	Image       *string   `gorm:"type:varchar(255)" json:"image,omitempty"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
