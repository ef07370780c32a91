package services

import (
	"regexp"
	"testing"
	"time"

	"food_delivery_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoiceNumber(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^HSU-INV-20250615-\d{4}$`)

	for i := 0; i < 50; i++ {
		number := NewInvoiceNumber(now)
		assert.Regexp(t, pattern, number)
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^HSU-ORD-20250615-\d{4}$`)

	for i := 0; i < 50; i++ {
		number := NewOrderNumber(now)
		assert.Regexp(t, pattern, number)
	}
}

func TestBuildInvoice(t *testing.T) {
	issuedAt := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	order := &models.Order{
		ID:           7,
		RestaurantID: 3,
		Customer:     models.Customer{Name: "Harsha", Mobile: "9876543210", Address: "12 MG Road"},
		Items: []models.OrderItem{
			{DishID: 1, Name: "Paneer Tikka", Price: 100, Quantity: 2, Total: 200},
		},
		Bill:    models.Bill{FoodTotal: 200, GstPercent: 5, GstAmount: 10, PlatformFee: 5, HandlingCharge: 3, DeliveryCharge: 30, GrandTotal: 248},
		Payment: models.Payment{Method: models.PaymentMethodUPI, Status: models.PaymentStatusPending},
	}

	invoice := buildInvoice(order, "HSU-INV-20250615-4321", issuedAt)

	assert.Equal(t, "HSU-INV-20250615-4321", invoice.InvoiceNumber)
	assert.Equal(t, order.RestaurantID, invoice.RestaurantID)
	assert.Equal(t, order.Customer, invoice.Customer)
	assert.Equal(t, order.Items, invoice.Items)
	assert.Equal(t, order.Bill, invoice.Bill)
	assert.Equal(t, "INR", invoice.Currency)
	assert.Equal(t, models.PaymentMethodUPI, invoice.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, invoice.PaymentStatus)
	assert.Equal(t, issuedAt, invoice.IssuedAt)

	// The item snapshot is a copy, not a shared slice.
	order.Items[0].Name = "changed"
	assert.Equal(t, "Paneer Tikka", invoice.Items[0].Name)
}

func TestInvoiceService_GetInvoiceByOrderID(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)

	invoiceService := NewInvoiceService(&fakeInvoiceRepo{orderRepo: f.orderRepo})

	invoice, err := invoiceService.GetInvoiceByOrderID(result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Invoice.InvoiceNumber, invoice.InvoiceNumber)

	_, err = invoiceService.GetInvoiceByOrderID(999)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceService_GetInvoiceByNumber(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)

	invoiceService := NewInvoiceService(&fakeInvoiceRepo{orderRepo: f.orderRepo})

	invoice, err := invoiceService.GetInvoiceByNumber(result.Invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, result.Order.ID, invoice.OrderID)

	_, err = invoiceService.GetInvoiceByNumber("HSU-INV-19700101-0000")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
