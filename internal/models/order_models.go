package models

import "time"

// Order status constants. Transitions between them are enforced by the
// order service; DELIVERED and CANCELLED are terminal.
const (
	OrderStatusCreated        = "CREATED"
	OrderStatusPaid           = "PAID"
	OrderStatusAccepted       = "ACCEPTED"
	OrderStatusPreparing      = "PREPARING"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// Payment method and payment status constants.
const (
	PaymentMethodUPI = "UPI"
	PaymentMethodCOD = "COD"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

// Customer is the contact block embedded in an order. Customers are not
// first-class accounts; every order carries its own copy.
type Customer struct {
	Name    string `json:"name" db:"customer_name" binding:"required"`
	Mobile  string `json:"mobile" db:"customer_mobile" binding:"required"`
	Address string `json:"address" db:"customer_address" binding:"required"`
}

// OrderItem is a line-item snapshot. Name and price are copied from the dish
// at order time and are never re-read from the live catalog afterwards.
type OrderItem struct {
	ID       int64   `json:"id,omitempty" db:"id"`
	OrderID  int64   `json:"-" db:"order_id"`
	DishID   int64   `json:"dish_id" db:"dish_id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	Quantity int     `json:"quantity" db:"quantity"`
	Total    float64 `json:"total" db:"total"`
}

// Bill is the cost breakdown produced by the billing engine. GrandTotal is
// only ever written by ComputeBill; nothing else recomputes or adjusts it.
type Bill struct {
	FoodTotal      float64 `json:"food_total" db:"food_total"`
	GstPercent     float64 `json:"gst_percent" db:"gst_percent"`
	GstAmount      float64 `json:"gst_amount" db:"gst_amount"`
	PlatformFee    float64 `json:"platform_fee" db:"platform_fee"`
	HandlingCharge float64 `json:"handling_charge" db:"handling_charge"`
	DeliveryCharge float64 `json:"delivery_charge" db:"delivery_charge"`
	GrandTotal     float64 `json:"grand_total" db:"grand_total"`
}

// Payment is the payment sub-record of an order.
type Payment struct {
	Method string `json:"method" db:"payment_method"`
	Status string `json:"status" db:"payment_status"`
}

// Order is the mutable record of a placed order. The restaurant name is
// denormalized so order listings survive catalog edits.
type Order struct {
	ID             int64       `json:"id" db:"id"`
	OrderNumber    string      `json:"order_number" db:"order_number"`
	RestaurantID   int64       `json:"restaurant_id" db:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name" db:"restaurant_name"`
	Customer       Customer    `json:"customer"`
	Items          []OrderItem `json:"items"`
	Bill           Bill        `json:"bill"`
	DistanceKm     float64     `json:"distance_km" db:"distance_km"`
	Payment        Payment     `json:"payment"`
	Status         string      `json:"status" db:"status"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	RestaurantID *int64  `form:"restaurant_id"`
	Status       *string `form:"status"`
	Date         *string `form:"date"` // Expected format YYYY-MM-DD
	Page         int     `form:"page"`
	PageSize     int     `form:"page_size"`
}
