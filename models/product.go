package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name" validate:"required"`
	Description string    `gorm:"size:1000" json:"description"`
	Image       string    `gorm:"column:image_url" json:"image"`
	Price       float64   `gorm:"not null" json:"price" validate:"required,gte=0"`
	SellerID    uint      `json:"seller_id"`
	CategoryID  uint      `json:"category_id"`
	Seller      *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
