// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const DefaultOrdersPageLimit = 10

type OrderService struct {
	uow       database.UnitOfWork
	publisher events.Publisher
	topic     string
}

type CartItem struct {
	ID       uint `json:"id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gte=1"`
}

type PlaceOrderRequest struct {
	CustomerInfo   map[string]interface{} `json:"customerInfo" validate:"required"`
	CartItems      []CartItem             `json:"cartItems" validate:"required,min=1,dive"`
	UserID         *uint                  `json:"userId,omitempty"`
	DeliveryMethod string                 `json:"deliveryMethod,omitempty" validate:"max=50"`
	DeliveryType   string                 `json:"deliveryType,omitempty" validate:"max=50"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type OrderPage struct {
	Orders      []models.Order `json:"orders"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalItems  int64          `json:"totalItems"`
}

func NewOrderService(uow database.UnitOfWork, publisher events.Publisher, topic string) *OrderService {
	return &OrderService{
		uow:       uow,
		publisher: publisher,
		topic:     topic,
	}
}

// PlaceOrder validates the cart against live stock and persists the order,
// its line items and the stock decrements in one transaction. userID is the
// verified buyer, or nil for a guest checkout; req.UserID is not consulted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID *uint, req *PlaceOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if len(req.CustomerInfo) == 0 {
		return nil, fmt.Errorf("%w: customer info is required", ErrValidation)
	}

	// Demand per product, so repeated lines are checked against stock together.
	demand := make(map[uint]int, len(req.CartItems))
	productIDs := make([]uint, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		if _, seen := demand[line.ID]; !seen {
			productIDs = append(productIDs, line.ID)
		}
		demand[line.ID] += line.Quantity
	}

	var order *models.Order

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		products := make(map[uint]models.Product, len(productIDs))
		for _, id := range productIDs {
			var product models.Product
			if err := tx.First(&product, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
				}
				return fmt.Errorf("database error: %w", err)
			}

			if product.Stock < demand[id] {
				return fmt.Errorf("%w for %q: requested %d, available %d",
					ErrInsufficientStock, product.Name, demand[id], product.Stock)
			}
			products[id] = product
		}

		items := make([]models.OrderItem, 0, len(req.CartItems))
		total := decimal.Zero
		for _, line := range req.CartItems {
			item := models.OrderItem{
				ProductID: line.ID,
				Quantity:  line.Quantity,
				Price:     products[line.ID].Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		order = &models.Order{
			UserID:       userID,
			CustomerInfo: models.JSONB(req.CustomerInfo),
			DeliveryInfo: models.JSONB{
				"method": req.DeliveryMethod,
				"type":   req.DeliveryType,
			},
			TotalAmount: total.Round(2),
			Status:      models.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			item.OrderID = order.ID
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Compare and decrement in one statement; a concurrent checkout
			// that drained the stock leaves zero rows affected.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w for %q", ErrInsufficientStock, products[item.ProductID].Name)
			}

			order.Items = append(order.Items, item)
		}

		return nil
	})

	if err != nil {
		logrus.WithError(err).WithField("buyer", buyerLabel(userID)).Info("Order rejected")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"buyer":    buyerLabel(userID),
		"total":    order.TotalAmount.StringFixed(2),
		"items":    len(order.Items),
	}).Info("Order placed")

	s.publishOrderPlaced(ctx, order)

	return order, nil
}

func buyerLabel(userID *uint) string {
	if userID == nil {
		return "guest"
	}
	return strconv.FormatUint(uint64(*userID), 10)
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order) {
	lines := make([]events.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, events.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	publish(ctx, s.publisher, s.topic, strconv.FormatUint(uint64(order.ID), 10),
		events.New(events.TypeOrderPlaced, events.OrderPlaced{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			Items:       lines,
		}))
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.uow.DB(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params utils.PaginationParams) (*OrderPage, error) {
	var total int64
	if err := s.uow.DB(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	query := s.uow.DB(ctx).
		Preload("User").
		Order("created_at DESC, id DESC")
	if err := utils.ApplyPagination(query, params).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &OrderPage{
		Orders:      orders,
		TotalPages:  utils.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		TotalItems:  total,
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.uow.DB(ctx).
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to status. Delivered and cancelled orders
// are final; setting the current status again is a no-op.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	var order models.Order
	var previous models.OrderStatus

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		previous = order.Status
		if previous == status {
			return nil
		}
		if previous.Terminal() {
			return fmt.Errorf("%w: order %d is already %s", ErrConflict, id, previous)
		}

		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	if previous != status {
		logrus.WithFields(logrus.Fields{
			"order_id": id,
			"from":     previous,
			"to":       status,
		}).Info("Order status changed")

		publish(ctx, s.publisher, s.topic, strconv.FormatUint(uint64(id), 10),
			events.New(events.TypeOrderStatusChanged, events.OrderStatusChanged{
				OrderID: id,
				From:    string(previous),
				To:      string(status),
			}))
	}

	return &order, nil
}
