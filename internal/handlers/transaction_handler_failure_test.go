package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expense-manager/internal/database"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestCreate_StoreFailureReturnsDatabaseError drives a failing insert through
// the full handler stack: the category lookup succeeds against sqlite, the
// write fails at the store, and the client sees only the generic
// retry-suggesting SYSTEM_002 envelope.
func TestCreate_StoreFailureReturnsDatabaseError(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	user := database.CreateTestUser(t, db, "alice")
	food := database.CreateTestCategory(t, db, nil, "Food", models.TypeExpense)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	failingDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions"`).WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	service := services.NewTransactionService(
		repositories.NewTransactionRepository(failingDB),
		repositories.NewCategoryRepository(db.DB),
		nil,
	)
	handler := NewTransactionHandler(service)

	body := fmt.Sprintf(`{"amount":"45.50","type":"expense","category_id":%q,"description":"groceries","transaction_date":"2025-03-14"}`, food.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", user.ID)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SYSTEM_002", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "try again")
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
