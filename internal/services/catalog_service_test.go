package services

import (
	"context"
	"testing"

	"food_delivery_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenuCache struct {
	menus map[int64][]models.Dish

	getCalls        int
	setCalls        int
	invalidateCalls int
	getErr          error
	setErr          error
}

func newFakeMenuCache() *fakeMenuCache {
	return &fakeMenuCache{menus: make(map[int64][]models.Dish)}
}

func (c *fakeMenuCache) GetMenu(ctx context.Context, restaurantID int64) ([]models.Dish, error) {
	c.getCalls++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.menus[restaurantID], nil
}

func (c *fakeMenuCache) SetMenu(ctx context.Context, restaurantID int64, dishes []models.Dish) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.menus[restaurantID] = dishes
	return nil
}

func (c *fakeMenuCache) InvalidateMenu(ctx context.Context, restaurantID int64) error {
	c.invalidateCalls++
	delete(c.menus, restaurantID)
	return nil
}

type catalogFixture struct {
	service    CatalogService
	cache      *fakeMenuCache
	restaurant *models.Restaurant
	dish       *models.Dish
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	restaurantRepo := newFakeRestaurantRepo()
	dishRepo := newFakeDishRepo()
	cache := newFakeMenuCache()
	service := NewCatalogService(restaurantRepo, dishRepo, cache)

	restaurant, err := service.CreateRestaurant(&models.Restaurant{
		Name:        "Spice Villa",
		FullAddress: "12 MG Road",
		City:        "Pune",
		IsOpen:      true,
		IsActive:    true,
	})
	require.NoError(t, err)

	dish, err := service.CreateDish(&models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Paneer Tikka",
		Price:        100,
		Type:         models.DishTypeVeg,
		IsAvailable:  true,
	})
	require.NoError(t, err)

	return &catalogFixture{service: service, cache: cache, restaurant: restaurant, dish: dish}
}

func TestCreateRestaurant_Validation(t *testing.T) {
	service := NewCatalogService(newFakeRestaurantRepo(), newFakeDishRepo(), nil)

	tests := []struct {
		name       string
		restaurant models.Restaurant
	}{
		{name: "empty name", restaurant: models.Restaurant{FullAddress: "a", City: "Pune"}},
		{name: "missing address", restaurant: models.Restaurant{Name: "X", City: "Pune"}},
		{name: "missing city", restaurant: models.Restaurant{Name: "X", FullAddress: "a"}},
		{name: "negative radius", restaurant: models.Restaurant{Name: "X", FullAddress: "a", City: "Pune", DeliveryRadiusKm: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateRestaurant(&tt.restaurant)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateDish_Validation(t *testing.T) {
	f := newCatalogFixture(t)

	tests := []struct {
		name    string
		dish    models.Dish
		wantErr error
	}{
		{
			name:    "empty name",
			dish:    models.Dish{RestaurantID: f.restaurant.ID, Price: 10, Type: models.DishTypeVeg},
			wantErr: ErrValidation,
		},
		{
			name:    "zero price",
			dish:    models.Dish{RestaurantID: f.restaurant.ID, Name: "X", Price: 0, Type: models.DishTypeVeg},
			wantErr: ErrValidation,
		},
		{
			name:    "bad type",
			dish:    models.Dish{RestaurantID: f.restaurant.ID, Name: "X", Price: 10, Type: "VEGAN"},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown restaurant",
			dish:    models.Dish{RestaurantID: 999, Name: "X", Price: 10, Type: models.DishTypeVeg},
			wantErr: ErrRestaurantNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateDish(&tt.dish)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateDish_NormalizesType(t *testing.T) {
	f := newCatalogFixture(t)

	dish, err := f.service.CreateDish(&models.Dish{
		RestaurantID: f.restaurant.ID,
		Name:         "Chicken Curry",
		Price:        180,
		Type:         "non_veg",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DishTypeNonVeg, dish.Type)
}

func TestGetMenu_PopulatesCache(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	// Mutations during fixture setup invalidated the cache, so the first
	// read misses and writes through.
	dishes, err := f.service.GetMenu(ctx, f.restaurant.ID, true)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, 1, f.cache.setCalls)

	// The second read is served from the cache.
	setCalls := f.cache.setCalls
	dishes, err = f.service.GetMenu(ctx, f.restaurant.ID, true)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, setCalls, f.cache.setCalls)
}

func TestGetMenu_AdminViewBypassesCache(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	reads := f.cache.getCalls
	_, err := f.service.GetMenu(ctx, f.restaurant.ID, false)
	require.NoError(t, err)
	assert.Equal(t, reads, f.cache.getCalls)
	assert.Zero(t, f.cache.setCalls)
}

func TestGetMenu_CacheFailureFallsBackToDatabase(t *testing.T) {
	f := newCatalogFixture(t)
	f.cache.getErr = assert.AnError

	dishes, err := f.service.GetMenu(context.Background(), f.restaurant.ID, true)
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}

func TestGetMenu_UnknownRestaurant(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.service.GetMenu(context.Background(), 999, true)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestGetMenu_FiltersUnavailableDishes(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	hidden := false
	_, err := f.service.UpdateDishAvailability(f.dish.ID, UpdateDishAvailabilityRequest{IsAvailable: &hidden})
	require.NoError(t, err)

	available, err := f.service.GetMenu(ctx, f.restaurant.ID, true)
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := f.service.GetMenu(ctx, f.restaurant.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDishMutationsInvalidateMenuCache(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.service.GetMenu(ctx, f.restaurant.ID, true)
	require.NoError(t, err)
	require.Contains(t, f.cache.menus, f.restaurant.ID)

	f.dish.Price = 120
	_, err = f.service.UpdateDish(f.dish)
	require.NoError(t, err)
	assert.NotContains(t, f.cache.menus, f.restaurant.ID)
}

func TestDeleteDish_InvalidatesCacheAndRemoves(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.DeleteDish(f.dish.ID))

	dishes, err := f.service.GetMenu(ctx, f.restaurant.ID, true)
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestUpdateRestaurantStatus(t *testing.T) {
	f := newCatalogFixture(t)

	open, active := false, true
	restaurant, err := f.service.UpdateRestaurantStatus(f.restaurant.ID, UpdateRestaurantStatusRequest{
		IsOpen:   &open,
		IsActive: &active,
	})
	require.NoError(t, err)
	assert.False(t, restaurant.IsOpen)
	assert.True(t, restaurant.IsActive)
	assert.False(t, restaurant.AcceptsOrders())
}

func TestUpdateRestaurantStatus_NotFound(t *testing.T) {
	f := newCatalogFixture(t)

	open, active := true, true
	_, err := f.service.UpdateRestaurantStatus(999, UpdateRestaurantStatusRequest{IsOpen: &open, IsActive: &active})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestNilMenuCacheIsAllowed(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	dishRepo := newFakeDishRepo()
	service := NewCatalogService(restaurantRepo, dishRepo, nil)

	restaurant, err := service.CreateRestaurant(&models.Restaurant{
		Name:        "No Cache Cafe",
		FullAddress: "1 Lane",
		City:        "Pune",
	})
	require.NoError(t, err)

	_, err = service.CreateDish(&models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Tea",
		Price:        15,
		Type:         models.DishTypeVeg,
		IsAvailable:  true,
	})
	require.NoError(t, err)

	dishes, err := service.GetMenu(context.Background(), restaurant.ID, true)
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}
