package models

import "time"

// PaymentSettings holds the platform-wide billing parameters.
// Rows are append-only: updating settings deactivates the current row and
// inserts a new one, so invoices issued under old rates stay explainable.
// A partial unique index on (is_active) WHERE is_active guarantees at most
// one active row.
type PaymentSettings struct {
	ID               int64     `json:"id" db:"id"`
	QRImage          string    `json:"qr_image" db:"qr_image" binding:"required"`
	UpiID            string    `json:"upi_id" db:"upi_id" binding:"required"`
	PlatformFee      float64   `json:"platform_fee" db:"platform_fee"`
	HandlingCharge   float64   `json:"handling_charge" db:"handling_charge"`
	DeliveryFeePerKm float64   `json:"delivery_fee_per_km" db:"delivery_fee_per_km"`
	GstPercent       float64   `json:"gst_percent" db:"gst_percent"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// PublicSettings is the customer-facing projection of the active settings,
// used by the order page to show charges and the payment QR.
type PublicSettings struct {
	QRImage          string  `json:"qr_image"`
	UpiID            string  `json:"upi_id"`
	PlatformFee      float64 `json:"platform_fee"`
	HandlingCharge   float64 `json:"handling_charge"`
	DeliveryFeePerKm float64 `json:"delivery_fee_per_km"`
	GstPercent       float64 `json:"gst_percent"`
}
