package models

import "time"

// Invoice is the immutable financial record paired one-to-one with an order.
// It duplicates the customer block, item snapshot and bill breakdown as they
// were at order time. Monetary fields are never updated after creation; only
// the payment status may be advanced by payment confirmation.
type Invoice struct {
	ID            int64       `json:"id" db:"id"`
	InvoiceNumber string      `json:"invoice_number" db:"invoice_number"`
	OrderID       int64       `json:"order_id" db:"order_id"`
	RestaurantID  int64       `json:"restaurant_id" db:"restaurant_id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items"`
	Bill          Bill        `json:"bill"`
	Currency      string      `json:"currency" db:"currency"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	PaymentStatus string      `json:"payment_status" db:"payment_status"`
	IssuedAt      time.Time   `json:"issued_at" db:"issued_at"`
}
