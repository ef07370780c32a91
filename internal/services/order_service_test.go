package services

import (
	"fmt"
	"testing"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	service        OrderService
	orderRepo      *fakeOrderRepo
	restaurantRepo *fakeRestaurantRepo
	dishRepo       *fakeDishRepo
	settingsRepo   *fakeSettingsRepo

	restaurant *models.Restaurant
	dish       *models.Dish
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	restaurantRepo := newFakeRestaurantRepo()
	dishRepo := newFakeDishRepo()
	settingsRepo := newFakeSettingsRepo()

	restaurant := &models.Restaurant{
		Name:     "Spice Villa",
		City:     "Pune",
		IsOpen:   true,
		IsActive: true,
	}
	_, err := restaurantRepo.CreateRestaurant(restaurant)
	require.NoError(t, err)

	dish := &models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Paneer Tikka",
		Price:        100,
		Type:         models.DishTypeVeg,
		IsAvailable:  true,
	}
	_, err = dishRepo.CreateDish(dish)
	require.NoError(t, err)

	require.NoError(t, settingsRepo.InsertNewActive(&models.PaymentSettings{
		QRImage:          "https://cdn.example.com/qr.png",
		UpiID:            "harshu@upi",
		PlatformFee:      5,
		HandlingCharge:   3,
		DeliveryFeePerKm: 10,
		GstPercent:       5,
	}))

	return &orderServiceFixture{
		service:        NewOrderService(orderRepo, &fakeInvoiceRepo{orderRepo: orderRepo}, restaurantRepo, dishRepo, settingsRepo),
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		dishRepo:       dishRepo,
		settingsRepo:   settingsRepo,
		restaurant:     restaurant,
		dish:           dish,
	}
}

func (f *orderServiceFixture) createRequest() CreateOrderRequest {
	return CreateOrderRequest{
		RestaurantID: f.restaurant.ID,
		Items:        []CreateOrderLineRequest{{DishID: f.dish.ID, Quantity: 2}},
		Customer: models.Customer{
			Name:    "Harsha",
			Mobile:  "9876543210",
			Address: "12 MG Road, Pune",
		},
		DistanceKm:    3,
		PaymentMethod: models.PaymentMethodUPI,
	}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderServiceFixture(t)

	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	require.NotNil(t, result.Invoice)

	order := result.Order
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.Payment.Status)
	assert.Equal(t, models.PaymentMethodUPI, order.Payment.Method)
	assert.Equal(t, f.restaurant.Name, order.RestaurantName)
	assert.NotEmpty(t, order.OrderNumber)

	// Price snapshot and bill for 2 x 100 at 3km with the fixture settings.
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Paneer Tikka", order.Items[0].Name)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, 200.0, order.Items[0].Total)
	assert.Equal(t, 200.0, order.Bill.FoodTotal)
	assert.Equal(t, 10.0, order.Bill.GstAmount)
	assert.Equal(t, 30.0, order.Bill.DeliveryCharge)
	assert.Equal(t, 248.0, order.Bill.GrandTotal)

	// The invoice mirrors the order exactly.
	invoice := result.Invoice
	assert.Equal(t, order.ID, invoice.OrderID)
	assert.Equal(t, order.Bill, invoice.Bill)
	assert.Equal(t, order.Customer, invoice.Customer)
	assert.Equal(t, order.Items, invoice.Items)
	assert.Equal(t, "INR", invoice.Currency)
	assert.NotEmpty(t, invoice.InvoiceNumber)

	assert.NotEmpty(t, result.WhatsAppMessage)

	// Persisted as a pair.
	assert.Len(t, f.orderRepo.orders, 1)
	assert.Len(t, f.orderRepo.invoices, 1)
}

func TestCreateOrder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *orderServiceFixture, req *CreateOrderRequest)
		wantErr error
	}{
		{
			name:    "unknown restaurant",
			mutate:  func(f *orderServiceFixture, req *CreateOrderRequest) { req.RestaurantID = 999 },
			wantErr: ErrRestaurantNotFound,
		},
		{
			name: "restaurant closed",
			mutate: func(f *orderServiceFixture, req *CreateOrderRequest) {
				f.restaurantRepo.restaurants[f.restaurant.ID].IsOpen = false
			},
			wantErr: ErrRestaurantUnavailable,
		},
		{
			name: "restaurant deactivated",
			mutate: func(f *orderServiceFixture, req *CreateOrderRequest) {
				f.restaurantRepo.restaurants[f.restaurant.ID].IsActive = false
			},
			wantErr: ErrRestaurantUnavailable,
		},
		{
			name:    "unknown dish",
			mutate:  func(f *orderServiceFixture, req *CreateOrderRequest) { req.Items[0].DishID = 999 },
			wantErr: ErrDishNotFound,
		},
		{
			name: "dish from another restaurant",
			mutate: func(f *orderServiceFixture, req *CreateOrderRequest) {
				other := &models.Restaurant{Name: "Other", City: "Pune", IsOpen: true, IsActive: true}
				_, _ = f.restaurantRepo.CreateRestaurant(other)
				foreign := &models.Dish{RestaurantID: other.ID, Name: "Momos", Price: 60, Type: models.DishTypeVeg, IsAvailable: true}
				_, _ = f.dishRepo.CreateDish(foreign)
				req.Items[0].DishID = foreign.ID
			},
			wantErr: ErrDishNotFound,
		},
		{
			name: "dish unavailable",
			mutate: func(f *orderServiceFixture, req *CreateOrderRequest) {
				f.dishRepo.dishes[f.dish.ID].IsAvailable = false
			},
			wantErr: ErrDishUnavailable,
		},
		{
			name:    "empty item list",
			mutate:  func(f *orderServiceFixture, req *CreateOrderRequest) { req.Items = nil },
			wantErr: ErrInvalidOrder,
		},
		{
			name: "no active settings",
			mutate: func(f *orderServiceFixture, req *CreateOrderRequest) {
				f.settingsRepo.history = nil
			},
			wantErr: ErrSettingsNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderServiceFixture(t)
			req := f.createRequest()
			tt.mutate(f, &req)

			_, err := f.service.CreateOrder(req)
			assert.ErrorIs(t, err, tt.wantErr)

			// A rejected order leaves nothing behind.
			assert.Empty(t, f.orderRepo.orders)
			assert.Empty(t, f.orderRepo.invoices)
		})
	}
}

func TestCreateOrder_RetriesNumberCollision(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.orderRepo.duplicateCreates = 2

	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, f.orderRepo.createCalls)
	assert.Len(t, f.orderRepo.orders, 1)
	assert.NotEmpty(t, result.Order.OrderNumber)
}

func TestCreateOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.orderRepo.duplicateCreates = persistAttempts

	_, err := f.service.CreateOrder(f.createRequest())
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
	assert.Equal(t, persistAttempts, f.orderRepo.createCalls)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrder_NonDuplicateErrorIsNotRetried(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.orderRepo.createErr = fmt.Errorf("%w: connection reset", repositories.ErrDatabaseError)

	_, err := f.service.CreateOrder(f.createRequest())
	assert.ErrorIs(t, err, repositories.ErrDatabaseError)
	assert.Equal(t, 1, f.orderRepo.createCalls)
}

func TestCanTransition(t *testing.T) {
	statuses := []string{
		models.OrderStatusCreated,
		models.OrderStatusAccepted,
		models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}

	allowed := map[string]map[string]bool{
		models.OrderStatusCreated:        {models.OrderStatusAccepted: true, models.OrderStatusCancelled: true},
		models.OrderStatusAccepted:       {models.OrderStatusPreparing: true, models.OrderStatusCancelled: true},
		models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery: true},
		models.OrderStatusOutForDelivery: {models.OrderStatusDelivered: true},
		models.OrderStatusDelivered:      {},
		models.OrderStatusCancelled:      {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("UNKNOWN", models.OrderStatusAccepted))
	assert.False(t, CanTransition(models.OrderStatusCreated, "UNKNOWN"))
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	orderID := result.Order.ID

	order, err := f.service.UpdateOrderStatus(orderID, UpdateOrderStatusRequest{Status: models.OrderStatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)

	order, err = f.service.UpdateOrderStatus(orderID, UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, order.Status)
}

func TestUpdateOrderStatus_RejectsInvalidTransition(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	orderID := result.Order.ID

	// CREATED cannot jump straight to DELIVERED.
	_, err = f.service.UpdateOrderStatus(orderID, UpdateOrderStatusRequest{Status: models.OrderStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The stored status is untouched.
	stored, err := f.service.GetOrderByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCreated, stored.Status)
}

func TestUpdateOrderStatus_TerminalStates(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	orderID := result.Order.ID

	_, err = f.service.UpdateOrderStatus(orderID, UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	require.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(orderID, UpdateOrderStatusRequest{Status: models.OrderStatusAccepted})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatus_OrderNotFound(t *testing.T) {
	f := newOrderServiceFixture(t)

	_, err := f.service.UpdateOrderStatus(42, UpdateOrderStatusRequest{Status: models.OrderStatusAccepted})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmPayment(t *testing.T) {
	f := newOrderServiceFixture(t)
	result, err := f.service.CreateOrder(f.createRequest())
	require.NoError(t, err)
	orderID := result.Order.ID

	order, err := f.service.ConfirmPayment(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.Payment.Status)

	// The invoice payment status moves with the order.
	invoice := f.orderRepo.invoices[orderID]
	assert.Equal(t, models.PaymentStatusPaid, invoice.PaymentStatus)
}

func TestConfirmPayment_OrderNotFound(t *testing.T) {
	f := newOrderServiceFixture(t)

	_, err := f.service.ConfirmPayment(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
