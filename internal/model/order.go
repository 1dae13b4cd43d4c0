package model

import (
	"time"
)

// Order 商店订单
type Order struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName   string    `json:"last_name" gorm:"type:varchar(50);not null"`
	Email      string    `json:"email" gorm:"type:varchar(254);not null"`
	Address    string    `json:"address" gorm:"type:varchar(250);not null"`
	PostalCode string    `json:"postal_code" gorm:"type:varchar(20);not null"`
	City       string    `json:"city" gorm:"type:varchar(100);not null"`
	Paid       bool      `json:"paid" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
