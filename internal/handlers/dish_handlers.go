package handlers

import (
	"errors"
	"net/http"

	"food_delivery_backend/internal/models"
	"food_delivery_backend/internal/services"
	"food_delivery_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DishHandler holds the catalog service for dish management.
type DishHandler struct {
	catalogService services.CatalogService
}

// NewDishHandler creates a new DishHandler.
func NewDishHandler(cs services.CatalogService) *DishHandler {
	return &DishHandler{catalogService: cs}
}

// CreateDish handles adding a dish to a restaurant's menu (admin).
func (h *DishHandler) CreateDish(c *gin.Context) {
	var dish models.Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		utils.LogError(err, "CreateDish: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.catalogService.CreateDish(&dish)
	if err != nil {
		utils.LogError(err, "CreateDish: Error from catalogService.CreateDish")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid dish data.", err.Error()))
		case errors.Is(err, services.ErrRestaurantNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Restaurant not found.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create dish.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateDish handles a full dish update (admin).
func (h *DishHandler) UpdateDish(c *gin.Context) {
	dishID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dish models.Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		utils.LogError(err, "UpdateDish: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	dish.ID = dishID

	updated, err := h.catalogService.UpdateDish(&dish)
	if err != nil {
		utils.LogError(err, "UpdateDish: Error from catalogService.UpdateDish")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid dish data.", err.Error()))
		case errors.Is(err, services.ErrDishNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dish not found.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update dish.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateDishAvailability handles toggling is_available (admin).
func (h *DishHandler) UpdateDishAvailability(c *gin.Context) {
	dishID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateDishAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateDishAvailability: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updated, err := h.catalogService.UpdateDishAvailability(dishID, req)
	if err != nil {
		utils.LogError(err, "UpdateDishAvailability: Error from catalogService.UpdateDishAvailability")
		if errors.Is(err, services.ErrDishNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dish not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update dish availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDish handles removing a dish from the menu (admin).
func (h *DishHandler) DeleteDish(c *gin.Context) {
	dishID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteDish(dishID); err != nil {
		utils.LogError(err, "DeleteDish: Error from catalogService.DeleteDish")
		if errors.Is(err, services.ErrDishNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Dish not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete dish.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted successfully"})
}
