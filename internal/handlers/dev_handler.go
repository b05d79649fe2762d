package handlers

import (
	"net/http"

	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	sampleData services.SampleDataServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(sampleData services.SampleDataServiceInterface) *DevHandler {
	return &DevHandler{sampleData: sampleData}
}

const (
	defaultSampleCount = 100
	maxSampleCount     = 1000
)

// GenerateSampleData seeds fake transactions for the authenticated user so
// the dashboard and reports have data to show in development.
//
// Method: POST /api/v1/dev/sample-data
// Query parameters:
//   - count: number of transactions to generate (default 100, max 1000)
func (h *DevHandler) GenerateSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntParam(c, "count", defaultSampleCount)
	if count < 1 || count > maxSampleCount {
		count = defaultSampleCount
	}

	if err := h.sampleData.SeedTransactions(userID, count); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Sample transactions generated",
		Meta:    map[string]int{"count": count},
	})
}
