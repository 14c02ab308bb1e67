// internal/models/order.go
package models

import (
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	UserID       *uint           `json:"userId" gorm:"index"`
	CustomerInfo JSONB           `json:"customerInfo" gorm:"type:jsonb;not null"`
	DeliveryInfo JSONB           `json:"deliveryInfo" gorm:"type:jsonb"`
	TotalAmount  decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// Relationships
	User  *UserSummary `json:"User,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem  `json:"OrderItems,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is immutable once written; Price is the product price at checkout.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `json:"orderId" gorm:"not null;index"`
	ProductID uint            `json:"productId" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`

	Product *ProductSummary `json:"Product,omitempty" gorm:"foreignKey:ProductID"`
}

// LineTotal returns Price × Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// UserSummary is the public slice of a user attached to orders and reviews.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (UserSummary) TableName() string {
	return "users"
}
