package services

import (
	"fmt"
	"time"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeRestaurantRepo struct {
	restaurants map[int64]*models.Restaurant
	nextID      int64
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[int64]*models.Restaurant)}
}

func (r *fakeRestaurantRepo) CreateRestaurant(restaurant *models.Restaurant) (int64, error) {
	r.nextID++
	restaurant.ID = r.nextID
	copied := *restaurant
	r.restaurants[restaurant.ID] = &copied
	return restaurant.ID, nil
}

func (r *fakeRestaurantRepo) GetRestaurantByID(restaurantID int64) (*models.Restaurant, error) {
	restaurant, ok := r.restaurants[restaurantID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (r *fakeRestaurantRepo) GetRestaurants(filters models.RestaurantFilters) ([]models.Restaurant, int, error) {
	var out []models.Restaurant
	for _, restaurant := range r.restaurants {
		if filters.ActiveOnly && !restaurant.IsActive {
			continue
		}
		if filters.City != nil && restaurant.City != *filters.City {
			continue
		}
		out = append(out, *restaurant)
	}
	return out, len(out), nil
}

func (r *fakeRestaurantRepo) UpdateRestaurant(restaurant *models.Restaurant) error {
	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *restaurant
	r.restaurants[restaurant.ID] = &copied
	return nil
}

func (r *fakeRestaurantRepo) UpdateRestaurantStatus(restaurantID int64, isOpen, isActive bool, updatedAt time.Time) error {
	restaurant, ok := r.restaurants[restaurantID]
	if !ok {
		return repositories.ErrNotFound
	}
	restaurant.IsOpen = isOpen
	restaurant.IsActive = isActive
	restaurant.UpdatedAt = updatedAt
	return nil
}

func (r *fakeRestaurantRepo) DeleteRestaurant(restaurantID int64) (int64, error) {
	if _, ok := r.restaurants[restaurantID]; !ok {
		return 0, repositories.ErrNotFound
	}
	delete(r.restaurants, restaurantID)
	return 1, nil
}

type fakeDishRepo struct {
	dishes map[int64]*models.Dish
	nextID int64
}

func newFakeDishRepo() *fakeDishRepo {
	return &fakeDishRepo{dishes: make(map[int64]*models.Dish)}
}

func (r *fakeDishRepo) CreateDish(dish *models.Dish) (int64, error) {
	r.nextID++
	dish.ID = r.nextID
	copied := *dish
	r.dishes[dish.ID] = &copied
	return dish.ID, nil
}

func (r *fakeDishRepo) GetDishByID(dishID int64) (*models.Dish, error) {
	dish, ok := r.dishes[dishID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *dish
	return &copied, nil
}

func (r *fakeDishRepo) GetDishesByRestaurant(restaurantID int64, availableOnly bool) ([]models.Dish, error) {
	var out []models.Dish
	for _, dish := range r.dishes {
		if dish.RestaurantID != restaurantID {
			continue
		}
		if availableOnly && !dish.IsAvailable {
			continue
		}
		out = append(out, *dish)
	}
	return out, nil
}

func (r *fakeDishRepo) UpdateDish(dish *models.Dish) error {
	existing, ok := r.dishes[dish.ID]
	if !ok || existing.RestaurantID != dish.RestaurantID {
		return repositories.ErrNotFound
	}
	copied := *dish
	r.dishes[dish.ID] = &copied
	return nil
}

func (r *fakeDishRepo) UpdateDishAvailability(dishID int64, isAvailable bool, updatedAt time.Time) error {
	dish, ok := r.dishes[dishID]
	if !ok {
		return repositories.ErrNotFound
	}
	dish.IsAvailable = isAvailable
	dish.UpdatedAt = updatedAt
	return nil
}

func (r *fakeDishRepo) DeleteDish(dishID int64) (int64, error) {
	if _, ok := r.dishes[dishID]; !ok {
		return 0, repositories.ErrNotFound
	}
	delete(r.dishes, dishID)
	return 1, nil
}

type fakeSettingsRepo struct {
	history []models.PaymentSettings
	nextID  int64

	// duplicateInserts makes the next N InsertNewActive calls fail with
	// ErrDuplicateKey before succeeding.
	duplicateInserts int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{}
}

func (r *fakeSettingsRepo) GetActiveSettings() (*models.PaymentSettings, error) {
	for i := range r.history {
		if r.history[i].IsActive {
			copied := r.history[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSettingsRepo) InsertNewActive(settings *models.PaymentSettings) error {
	if r.duplicateInserts > 0 {
		r.duplicateInserts--
		return fmt.Errorf("%w: duplicate active settings", repositories.ErrDuplicateKey)
	}
	for i := range r.history {
		r.history[i].IsActive = false
	}
	r.nextID++
	settings.ID = r.nextID
	settings.IsActive = true
	r.history = append(r.history, *settings)
	return nil
}

func (r *fakeSettingsRepo) GetSettingsHistory() ([]models.PaymentSettings, error) {
	out := make([]models.PaymentSettings, len(r.history))
	copy(out, r.history)
	return out, nil
}

func (r *fakeSettingsRepo) activeCount() int {
	count := 0
	for i := range r.history {
		if r.history[i].IsActive {
			count++
		}
	}
	return count
}

type fakeOrderRepo struct {
	orders   map[int64]*models.Order
	invoices map[int64]*models.Invoice
	nextID   int64

	// duplicateCreates makes the next N CreateOrderWithInvoice calls fail
	// with ErrDuplicateKey, simulating a number collision.
	duplicateCreates int
	createErr        error
	createCalls      int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[int64]*models.Order),
		invoices: make(map[int64]*models.Invoice),
	}
}

func (r *fakeOrderRepo) CreateOrderWithInvoice(order *models.Order, invoice *models.Invoice) error {
	r.createCalls++
	if r.duplicateCreates > 0 {
		r.duplicateCreates--
		return fmt.Errorf("%w: invoice number taken", repositories.ErrDuplicateKey)
	}
	if r.createErr != nil {
		return r.createErr
	}

	r.nextID++
	order.ID = r.nextID
	invoice.OrderID = order.ID
	r.nextID++
	invoice.ID = r.nextID

	copiedOrder := *order
	copiedInvoice := *invoice
	r.orders[order.ID] = &copiedOrder
	r.invoices[order.ID] = &copiedInvoice
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	var out []models.Order
	for _, order := range r.orders {
		if filters.RestaurantID != nil && order.RestaurantID != *filters.RestaurantID {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(orderID int64, currentStatus, newStatus string, updatedAt time.Time) error {
	order, ok := r.orders[orderID]
	if !ok || order.Status != currentStatus {
		return repositories.ErrNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) MarkOrderPaid(orderID int64, paidAt time.Time) error {
	order, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Payment.Status = models.PaymentStatusPaid
	order.UpdatedAt = paidAt
	if invoice, ok := r.invoices[orderID]; ok {
		invoice.PaymentStatus = models.PaymentStatusPaid
	}
	return nil
}

type fakeInvoiceRepo struct {
	orderRepo *fakeOrderRepo
}

func (r *fakeInvoiceRepo) GetInvoiceByOrderID(orderID int64) (*models.Invoice, error) {
	invoice, ok := r.orderRepo.invoices[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *invoice
	return &copied, nil
}

func (r *fakeInvoiceRepo) GetInvoiceByNumber(invoiceNumber string) (*models.Invoice, error) {
	for _, invoice := range r.orderRepo.invoices {
		if invoice.InvoiceNumber == invoiceNumber {
			copied := *invoice
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}
