package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. Free-form strings from
// clients must go through ParseRole before they reach the database.
type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleSeller:
		return RoleSeller, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"unique;not null" json:"username" validate:"required"`
	Email     string     `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password  string     `json:"-"`
	Role      Role       `gorm:"type:varchar(16);default:USER" json:"role"`
	Phone     string     `json:"phone,omitempty" gorm:"default:null"`
	Address   string     `json:"address,omitempty" gorm:"default:null"`
	City      string     `json:"city,omitempty" gorm:"default:null"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
	Cart      *Cart      `gorm:"foreignKey:UserID" json:"cart,omitempty"`
}
