package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

const (
	invoiceNumberPrefix = "HSU-INV"
	orderNumberPrefix   = "HSU-ORD"
	invoiceCurrency     = "INR"
)

// NewInvoiceNumber builds a candidate invoice number: prefix, calendar date,
// four-digit random suffix. Uniqueness is enforced by the database; a
// collision surfaces as ErrDuplicateKey and the caller retries with a fresh
// candidate.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", invoiceNumberPrefix, now.Format("20060102"), 1000+rand.Intn(9000))
}

// NewOrderNumber builds a candidate order number in the same shape.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", orderNumberPrefix, now.Format("20060102"), 1000+rand.Intn(9000))
}

// buildInvoice derives the immutable invoice from an order that has already
// been billed. Both records come from the same snapshot, so their monetary
// totals are identical by construction.
func buildInvoice(order *models.Order, invoiceNumber string, issuedAt time.Time) *models.Invoice {
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)

	return &models.Invoice{
		InvoiceNumber: invoiceNumber,
		RestaurantID:  order.RestaurantID,
		Customer:      order.Customer,
		Items:         items,
		Bill:          order.Bill,
		Currency:      invoiceCurrency,
		PaymentMethod: order.Payment.Method,
		PaymentStatus: order.Payment.Status,
		IssuedAt:      issuedAt,
	}
}

// --- InvoiceService Interface ---

type InvoiceService interface {
	GetInvoiceByOrderID(orderID int64) (*models.Invoice, error)
	GetInvoiceByNumber(invoiceNumber string) (*models.Invoice, error)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
}

// NewInvoiceService creates a new instance of InvoiceService.
func NewInvoiceService(ir repositories.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: ir}
}

func (s *invoiceService) GetInvoiceByOrderID(orderID int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByOrderID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice for order %d: %w", orderID, err)
	}
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByNumber(invoiceNumber string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByNumber(invoiceNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceNumber, err)
	}
	return invoice, nil
}
