package services

import (
	"errors"
	"fmt"
	"time"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrRestaurantUnavailable = errors.New("restaurant is not accepting orders")
	ErrDishNotFound          = errors.New("dish not found")
	ErrDishUnavailable       = errors.New("dish is not available")
	ErrInvalidTransition     = errors.New("invalid order status transition")
)

// allowedTransitions is the order state machine. DELIVERED and CANCELLED are
// terminal: they map to empty sets, so every move out of them is rejected.
var allowedTransitions = map[string][]string{
	models.OrderStatusCreated:        {models.OrderStatusAccepted, models.OrderStatusCancelled},
	models.OrderStatusAccepted:       {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {},
}

// CanTransition reports whether an order may move from current to next.
func CanTransition(current, next string) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// persistAttempts bounds the retry loop for order/invoice number collisions.
const persistAttempts = 5

// --- Data Transfer Objects (DTOs) ---

// CreateOrderLineRequest is one requested dish in a new order.
type CreateOrderLineRequest struct {
	DishID   int64 `json:"dish_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is used for placing a new order.
type CreateOrderRequest struct {
	RestaurantID  int64                    `json:"restaurant_id" binding:"required"`
	Items         []CreateOrderLineRequest `json:"items" binding:"required,dive"`
	Customer      models.Customer          `json:"customer" binding:"required"`
	DistanceKm    float64                  `json:"distance_km" binding:"gte=0"`
	PaymentMethod string                   `json:"payment_method" binding:"required,oneof=UPI COD"`
}

// CreateOrderResult bundles everything the order endpoint returns: the
// persisted order, its invoice, and the pre-formatted notification text the
// caller may relay to the business channel.
type CreateOrderResult struct {
	Order           *models.Order   `json:"order"`
	Invoice         *models.Invoice `json:"invoice"`
	WhatsAppMessage string          `json:"whatsapp_message"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---

type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*CreateOrderResult, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	ConfirmPayment(orderID int64) (*models.Order, error)
}

// --- orderService Implementation ---

type orderService struct {
	orderRepo      repositories.OrderRepository
	invoiceRepo    repositories.InvoiceRepository
	restaurantRepo repositories.RestaurantRepository
	dishRepo       repositories.DishRepository
	settingsRepo   repositories.SettingsRepository
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	ir repositories.InvoiceRepository,
	rr repositories.RestaurantRepository,
	dr repositories.DishRepository,
	sr repositories.SettingsRepository,
) OrderService {
	return &orderService{
		orderRepo:      or,
		invoiceRepo:    ir,
		restaurantRepo: rr,
		dishRepo:       dr,
		settingsRepo:   sr,
	}
}

// CreateOrder validates the request, snapshots live dish prices, runs the
// billing engine against the currently active settings, and persists the
// order together with its invoice in one transaction. Every failure happens
// before persistence; no partial order/invoice pair can exist.
func (s *orderService) CreateOrder(req CreateOrderRequest) (*CreateOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order items are required", ErrInvalidOrder)
	}

	restaurant, err := s.restaurantRepo.GetRestaurantByID(req.RestaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrRestaurantNotFound, req.RestaurantID)
		}
		return nil, fmt.Errorf("failed to fetch restaurant %d: %w", req.RestaurantID, err)
	}
	if !restaurant.AcceptsOrders() {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantUnavailable, restaurant.Name)
	}

	// Resolve every dish to a (name, price) snapshot. Prices are frozen here
	// and never re-read from the live catalog.
	items := make([]models.OrderItem, 0, len(req.Items))
	lines := make([]BillLine, 0, len(req.Items))
	for _, lineReq := range req.Items {
		dish, err := s.dishRepo.GetDishByID(lineReq.DishID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrDishNotFound, lineReq.DishID)
			}
			return nil, fmt.Errorf("failed to fetch dish %d: %w", lineReq.DishID, err)
		}
		if dish.RestaurantID != req.RestaurantID {
			return nil, fmt.Errorf("%w: dish %d does not belong to restaurant %d", ErrDishNotFound, lineReq.DishID, req.RestaurantID)
		}
		if !dish.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrDishUnavailable, dish.Name)
		}

		items = append(items, models.OrderItem{
			DishID:   dish.ID,
			Name:     dish.Name,
			Price:    dish.Price,
			Quantity: lineReq.Quantity,
			Total:    dish.Price * float64(lineReq.Quantity),
		})
		lines = append(lines, BillLine{Price: dish.Price, Quantity: lineReq.Quantity})
	}

	settings, err := s.settingsRepo.GetActiveSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSettingsNotConfigured
		}
		return nil, fmt.Errorf("failed to fetch payment settings: %w", err)
	}

	bill, err := ComputeBill(lines, req.DistanceKm, *settings)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Customer:       req.Customer,
		Items:          items,
		Bill:           bill,
		DistanceKm:     req.DistanceKm,
		Payment: models.Payment{
			Method: req.PaymentMethod,
			Status: models.PaymentStatusPending,
		},
		Status:    models.OrderStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Order and invoice numbers are random-suffixed; a unique-index collision
	// is retried with fresh candidates rather than surfaced.
	var invoice *models.Invoice
	var persistErr error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = NewOrderNumber(now)
		invoice = buildInvoice(order, NewInvoiceNumber(now), now)

		persistErr = s.orderRepo.CreateOrderWithInvoice(order, invoice)
		if persistErr == nil {
			break
		}
		if !errors.Is(persistErr, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to persist order: %w", persistErr)
		}
	}
	if persistErr != nil {
		return nil, fmt.Errorf("failed to persist order after %d attempts: %w", persistAttempts, persistErr)
	}

	return &CreateOrderResult{
		Order:           order,
		Invoice:         invoice,
		WhatsAppMessage: FormatOrderMessage(order, invoice),
	}, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	if !CanTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, req.Status)
	}

	err = s.orderRepo.UpdateOrderStatus(orderID, order.Status, req.Status, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The guarded update missed: the order moved under us.
			return nil, fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, orderID)
		}
		return nil, fmt.Errorf("failed to update order status in repository: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) ConfirmPayment(orderID int64) (*models.Order, error) {
	err := s.orderRepo.MarkOrderPaid(orderID, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to confirm payment for order %d: %w", orderID, err)
	}
	return s.GetOrderByID(orderID)
}
