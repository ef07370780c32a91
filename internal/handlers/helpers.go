package handlers

import (
	"net/http"

	"food_delivery_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path parameter. On a malformed id it writes the
// error response and returns ok=false.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with defaults.
// On malformed input it writes the error response and returns (0, 0).
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	pageSize := 10

	if pageStr := c.Query("page"); pageStr != "" {
		parsed, err := utils.StrToInt64(pageStr)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return 0, 0
		}
		page = int(parsed)
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		parsed, err := utils.StrToInt64(pageSizeStr)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return 0, 0
		}
		pageSize = int(parsed)
	}
	return page, pageSize
}
