package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"food_delivery_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
// Order and invoice creation is a single unit of work: both rows land in one
// transaction so an order can never exist without its invoice.
type OrderRepository interface {
	CreateOrderWithInvoice(order *models.Order, invoice *models.Invoice) error
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrderStatus(orderID int64, currentStatus, newStatus string, updatedAt time.Time) error
	MarkOrderPaid(orderID int64, paidAt time.Time) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, restaurant_id, restaurant_name,
	customer_name, customer_mobile, customer_address,
	food_total, gst_percent, gst_amount, platform_fee, handling_charge, delivery_charge, grand_total,
	distance_km, payment_method, payment_status, status, created_at, updated_at`

func scanOrder(s scanner, o *models.Order) error {
	return s.Scan(
		&o.ID, &o.OrderNumber, &o.RestaurantID, &o.RestaurantName,
		&o.Customer.Name, &o.Customer.Mobile, &o.Customer.Address,
		&o.Bill.FoodTotal, &o.Bill.GstPercent, &o.Bill.GstAmount, &o.Bill.PlatformFee,
		&o.Bill.HandlingCharge, &o.Bill.DeliveryCharge, &o.Bill.GrandTotal,
		&o.DistanceKm, &o.Payment.Method, &o.Payment.Status, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *orderRepository) CreateOrderWithInvoice(order *models.Order, invoice *models.Invoice) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting order transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := createOrder(tx, order); err != nil {
		return err
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := createOrderItem(tx, &order.Items[i]); err != nil {
			return err
		}
	}

	invoice.OrderID = order.ID
	if err := createInvoice(tx, invoice); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing order transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func createOrder(executor SQLExecutor, order *models.Order) error {
	query := `INSERT INTO orders
	            (order_number, restaurant_id, restaurant_name,
	             customer_name, customer_mobile, customer_address,
	             food_total, gst_percent, gst_amount, platform_fee, handling_charge, delivery_charge, grand_total,
	             distance_km, payment_method, payment_status, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING id`

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		order.OrderNumber, order.RestaurantID, order.RestaurantName,
		order.Customer.Name, order.Customer.Mobile, order.Customer.Address,
		order.Bill.FoodTotal, order.Bill.GstPercent, order.Bill.GstAmount, order.Bill.PlatformFee,
		order.Bill.HandlingCharge, order.Bill.DeliveryCharge, order.Bill.GrandTotal,
		order.DistanceKm, order.Payment.Method, order.Payment.Status, order.Status,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s: %v", ErrDuplicateKey, order.OrderNumber, err)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func createOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, dish_id, name, price, quantity, total)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.OrderID, item.DishID, item.Name, item.Price, item.Quantity, item.Total,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("%w: creating order item (dish_id: %d): %v", ErrDatabaseError, item.DishID, err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := scanOrder(r.db.QueryRow(query, orderID), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}

	items, err := getOrderItems(r.db, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func getOrderItems(executor SQLExecutor, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT id, order_id, dish_id, name, price, quantity, total
	          FROM order_items WHERE order_id = $1 ORDER BY id ASC`
	rows, err := executor.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &item.Name, &item.Price, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `, COUNT(*) OVER() as total_count FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.RestaurantID != nil {
		conditions = append(conditions, fmt.Sprintf("restaurant_id = $%d", argCounter))
		args = append(args, *filters.RestaurantID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("created_at BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.RestaurantID, &order.RestaurantName,
			&order.Customer.Name, &order.Customer.Mobile, &order.Customer.Address,
			&order.Bill.FoodTotal, &order.Bill.GstPercent, &order.Bill.GstAmount, &order.Bill.PlatformFee,
			&order.Bill.HandlingCharge, &order.Bill.DeliveryCharge, &order.Bill.GrandTotal,
			&order.DistanceKm, &order.Payment.Method, &order.Payment.Status, &order.Status,
			&order.CreatedAt, &order.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating orders: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

// UpdateOrderStatus moves an order to newStatus, guarded by the status the
// caller observed. A concurrent transition makes the guard miss and the
// caller sees ErrNotFound, never a silently overwritten state.
func (r *orderRepository) UpdateOrderStatus(orderID int64, currentStatus, newStatus string, updatedAt time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.Exec(query, newStatus, updatedAt, orderID, currentStatus)
	if err != nil {
		return fmt.Errorf("%w: updating order %d status: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOrderPaid flips the order's payment status and the paired invoice's
// payment status together.
func (r *orderRepository) MarkOrderPaid(orderID int64, paidAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting payment transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3`,
		models.PaymentStatusPaid, paidAt, orderID,
	)
	if err != nil {
		return fmt.Errorf("%w: marking order %d paid: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(
		`UPDATE invoices SET payment_status = $1 WHERE order_id = $2`,
		models.PaymentStatusPaid, orderID,
	)
	if err != nil {
		return fmt.Errorf("%w: marking invoice for order %d paid: %v", ErrDatabaseError, orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing payment transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
