package handlers

import (
	"fmt"
	"strconv"
	"time"

	"expense-manager/internal/models"
	"expense-manager/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// getIntParam reads a query parameter as an integer. Anything that is not a
// complete number, "2abc" included, falls back to the default.
func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}

// parseListFilters reads the optional listing filters off the query string.
// Unknown type values and malformed ids or dates are ignored rather than
// rejected, so a stale link still renders an unfiltered listing.
func parseListFilters(c echo.Context) models.TransactionFilters {
	var filters models.TransactionFilters

	if t := c.QueryParam("type"); models.IsValidType(t) {
		filters.Type = t
	}
	if raw := c.QueryParam("category"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filters.CategoryID = &id
		}
	}
	if raw := c.QueryParam("date_from"); raw != "" {
		if d, err := time.Parse(validation.DateLayout, raw); err == nil {
			filters.DateFrom = &d
		}
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		if d, err := time.Parse(validation.DateLayout, raw); err == nil {
			filters.DateTo = &d
		}
	}

	return filters
}
