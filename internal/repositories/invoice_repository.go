package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food_delivery_backend/internal/models"
)

// InvoiceRepository defines the read surface over invoices. Invoices are
// append-only: they are written exactly once, inside the order transaction,
// and the only field that ever changes afterwards is the payment status
// (via OrderRepository.MarkOrderPaid).
type InvoiceRepository interface {
	GetInvoiceByOrderID(orderID int64) (*models.Invoice, error)
	GetInvoiceByNumber(invoiceNumber string) (*models.Invoice, error)
}

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository.
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, order_id, restaurant_id,
	customer_name, customer_mobile, customer_address,
	food_total, gst_percent, gst_amount, platform_fee, handling_charge, delivery_charge, grand_total,
	currency, payment_method, payment_status, issued_at`

// createInvoice inserts the invoice and its item snapshot. It is called from
// OrderRepository.CreateOrderWithInvoice so both records share one transaction.
func createInvoice(executor SQLExecutor, invoice *models.Invoice) error {
	query := `INSERT INTO invoices
	            (invoice_number, order_id, restaurant_id,
	             customer_name, customer_mobile, customer_address,
	             food_total, gst_percent, gst_amount, platform_fee, handling_charge, delivery_charge, grand_total,
	             currency, payment_method, payment_status, issued_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id`

	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = time.Now()
	}

	err := executor.QueryRow(query,
		invoice.InvoiceNumber, invoice.OrderID, invoice.RestaurantID,
		invoice.Customer.Name, invoice.Customer.Mobile, invoice.Customer.Address,
		invoice.Bill.FoodTotal, invoice.Bill.GstPercent, invoice.Bill.GstAmount, invoice.Bill.PlatformFee,
		invoice.Bill.HandlingCharge, invoice.Bill.DeliveryCharge, invoice.Bill.GrandTotal,
		invoice.Currency, invoice.PaymentMethod, invoice.PaymentStatus, invoice.IssuedAt,
	).Scan(&invoice.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s: %v", ErrDuplicateKey, invoice.InvoiceNumber, err)
		}
		return fmt.Errorf("%w: creating invoice: %v", ErrDatabaseError, err)
	}

	for i := range invoice.Items {
		item := &invoice.Items[i]
		_, err := executor.Exec(
			`INSERT INTO invoice_items (invoice_id, dish_id, name, price, quantity, total)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			invoice.ID, item.DishID, item.Name, item.Price, item.Quantity, item.Total,
		)
		if err != nil {
			return fmt.Errorf("%w: creating invoice item (dish_id: %d): %v", ErrDatabaseError, item.DishID, err)
		}
	}
	return nil
}

func (r *invoiceRepository) getInvoice(query string, arg interface{}) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := r.db.QueryRow(query, arg).Scan(
		&invoice.ID, &invoice.InvoiceNumber, &invoice.OrderID, &invoice.RestaurantID,
		&invoice.Customer.Name, &invoice.Customer.Mobile, &invoice.Customer.Address,
		&invoice.Bill.FoodTotal, &invoice.Bill.GstPercent, &invoice.Bill.GstAmount, &invoice.Bill.PlatformFee,
		&invoice.Bill.HandlingCharge, &invoice.Bill.DeliveryCharge, &invoice.Bill.GrandTotal,
		&invoice.Currency, &invoice.PaymentMethod, &invoice.PaymentStatus, &invoice.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting invoice: %v", ErrDatabaseError, err)
	}

	items := []models.OrderItem{}
	rows, err := r.db.Query(
		`SELECT id, dish_id, name, price, quantity, total
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY id ASC`,
		invoice.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying invoice items for invoice %d: %v", ErrDatabaseError, invoice.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.DishID, &item.Name, &item.Price, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning invoice item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating invoice items: %v", ErrDatabaseError, err)
	}
	invoice.Items = items
	return invoice, nil
}

func (r *invoiceRepository) GetInvoiceByOrderID(orderID int64) (*models.Invoice, error) {
	return r.getInvoice(`SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID)
}

func (r *invoiceRepository) GetInvoiceByNumber(invoiceNumber string) (*models.Invoice, error) {
	return r.getInvoice(`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, invoiceNumber)
}
