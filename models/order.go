package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the closed set of order states accepted by the
// status-update endpoint.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusShipped:
		return StatusShipped, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

// Order is immutable after checkout except for its status. The stored
// total is the client-declared amount, never recomputed from the items.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `json:"user_id"`
	Total     float64     `gorm:"not null" json:"total_amount"`
	Status    OrderStatus `gorm:"type:varchar(16);default:PENDING" json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"order_date"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// OrderItem snapshots the product's name, description and image at
// purchase time. ProductID goes null if the product is deleted later;
// the snapshot fields and Quantity/UnitPrice are frozen forever.
type OrderItem struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OrderID            uint      `gorm:"not null" json:"order_id"`
	ProductID          *uint     `json:"product_id"`
	ProductName        string    `gorm:"not null" json:"product_name"`
	ProductDescription string    `gorm:"size:1000" json:"product_description"`
	ProductImage       string    `gorm:"column:product_image_url" json:"product_image"`
	Quantity           int       `gorm:"not null" json:"quantity" validate:"required,min=1"`
	UnitPrice          float64   `gorm:"not null" json:"unit_price"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DisplayName prefers the snapshot over the live product reference,
// which may have changed or vanished since checkout.
func (oi *OrderItem) DisplayName() string {
	if oi.ProductName != "" {
		return oi.ProductName
	}
	if oi.Product != nil {
		return oi.Product.Name
	}
	return "Unknown product"
}
