package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeOrderPlaced          = "order.placed"
	TypeOrderStatusChanged   = "order.status_changed"
	TypeProductRatingChanged = "product.rating_changed"
)

type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

func New(eventType string, data interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

type OrderLine struct {
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlaced struct {
	OrderID     uint            `json:"orderId"`
	UserID      *uint           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderLine     `json:"items"`
}

type OrderStatusChanged struct {
	OrderID uint   `json:"orderId"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type ProductRatingChanged struct {
	ProductID     uint                `json:"productId"`
	AverageRating decimal.NullDecimal `json:"averageRating"`
	ReviewCount   int                 `json:"reviewCount"`
}
