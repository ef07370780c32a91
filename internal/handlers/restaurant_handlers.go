package handlers

import (
	"errors"
	"net/http"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/services"
	"food_delivery_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler holds the catalog service.
type RestaurantHandler struct {
	catalogService services.CatalogService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(cs services.CatalogService) *RestaurantHandler {
	return &RestaurantHandler{catalogService: cs}
}

// CreateRestaurant handles the creation of a new restaurant (admin).
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := c.ShouldBindJSON(&restaurant); err != nil {
		utils.LogError(err, "CreateRestaurant: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.catalogService.CreateRestaurant(&restaurant)
	if err != nil {
		utils.LogError(err, "CreateRestaurant: Error from catalogService.CreateRestaurant")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRestaurants handles the public restaurant listing.
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	var filters models.RestaurantFilters
	filters.ActiveOnly = true
	if city := c.Query("city"); city != "" {
		filters.City = &city
	}
	filters.Page, filters.PageSize = parsePagination(c)
	if filters.Page == 0 {
		return
	}

	restaurants, totalCount, err := h.catalogService.GetRestaurants(filters)
	if err != nil {
		utils.LogError(err, "GetRestaurants: Error from catalogService.GetRestaurants")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurants.", "Internal error"))
		return
	}

	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      restaurants,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetRestaurantByID handles fetching a single restaurant.
func (h *RestaurantHandler) GetRestaurantByID(c *gin.Context) {
	restaurantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	restaurant, err := h.catalogService.GetRestaurantByID(restaurantID)
	if err != nil {
		utils.LogError(err, "GetRestaurantByID: Error from catalogService.GetRestaurantByID")
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// GetMenu handles the public menu listing for a restaurant.
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	restaurantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Admin callers may pass all=true to include unavailable dishes.
	availableOnly := c.Query("all") != "true"

	dishes, err := h.catalogService.GetMenu(c.Request.Context(), restaurantID, availableOnly)
	if err != nil {
		utils.LogError(err, "GetMenu: Error from catalogService.GetMenu")
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu.", "Internal error"))
		}
		return
	}

	if dishes == nil {
		dishes = []models.Dish{}
	}
	c.JSON(http.StatusOK, gin.H{"data": dishes, "count": len(dishes)})
}

// UpdateRestaurant handles a full restaurant update (admin).
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := c.ShouldBindJSON(&restaurant); err != nil {
		utils.LogError(err, "UpdateRestaurant: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	restaurant.ID = restaurantID

	updated, err := h.catalogService.UpdateRestaurant(&restaurant)
	if err != nil {
		utils.LogError(err, "UpdateRestaurant: Error from catalogService.UpdateRestaurant")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid restaurant data.", err.Error()))
		case errors.Is(err, services.ErrRestaurantNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateRestaurantStatus handles toggling is_open / is_active (admin).
func (h *RestaurantHandler) UpdateRestaurantStatus(c *gin.Context) {
	restaurantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateRestaurantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateRestaurantStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updated, err := h.catalogService.UpdateRestaurantStatus(restaurantID, req)
	if err != nil {
		utils.LogError(err, "UpdateRestaurantStatus: Error from catalogService.UpdateRestaurantStatus")
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update restaurant status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRestaurant handles deleting a restaurant and its dishes (admin).
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteRestaurant(restaurantID); err != nil {
		utils.LogError(err, "DeleteRestaurant: Error from catalogService.DeleteRestaurant")
		if errors.Is(err, services.ErrRestaurantNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete restaurant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant and its dishes deleted successfully"})
}
