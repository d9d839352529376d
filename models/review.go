package models

import "time"

// Review holds one rating per (product, user) pair.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_product_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `gorm:"size:1000" json:"comment"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"review_date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
