package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expense-manager/internal/database"
	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	handler *TransactionHandler
	user    *models.User
	food    *models.Category
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = database.SetupTestDB(s.T())

	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	service := services.NewTransactionService(transactionRepo, categoryRepo, nil)
	s.handler = NewTransactionHandler(service)

	s.user = database.CreateTestUser(s.T(), s.db, "alice")
	s.food = database.CreateTestCategory(s.T(), s.db, nil, "Food", models.TypeExpense)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// newContext builds an authenticated echo context for the given request.
func (s *TransactionHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)
	return c, rec
}

func (s *TransactionHandlerTestSuite) createBody(amount string) string {
	return fmt.Sprintf(`{"amount":%q,"type":"expense","category_id":%q,"description":"groceries","transaction_date":"2025-03-14"}`,
		amount, s.food.ID)
}

func (s *TransactionHandlerTestSuite) TestCreate() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", s.createBody("45.50"))

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("45.50", resp.Amount)
	s.Equal("Food", resp.CategoryName)
	s.Equal("2025-03-14", resp.TransactionDate)
}

func (s *TransactionHandlerTestSuite) TestCreate_InvalidAmount() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", s.createBody("0"))

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("TRANSACTION_002", resp.Error.Code)
	s.Equal("Amount must be greater than 0.", resp.Error.Message)
}

func (s *TransactionHandlerTestSuite) TestCreate_EmptyDescription() {
	body := fmt.Sprintf(`{"amount":"10.00","type":"expense","category_id":%q,"description":"  ","transaction_date":"2025-03-14"}`, s.food.ID)
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("TRANSACTION_003", resp.Error.Code)
	s.Equal("Description is required.", resp.Error.Message)
}

func (s *TransactionHandlerTestSuite) TestCreate_UnknownCategory() {
	body := fmt.Sprintf(`{"amount":"10.00","type":"expense","category_id":%q,"description":"x","transaction_date":"2025-03-14"}`, uuid.New())
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("CATEGORY_001", resp.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestCreate_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(s.createBody("10.00")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestUpdate() {
	txn := database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "20.00", "2025-02-01")

	body := fmt.Sprintf(`{"amount":"99.99","type":"expense","category_id":%q,"description":"updated","transaction_date":"2025-02-02"}`, s.food.ID)
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+txn.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("99.99", resp.Amount)
	s.Equal("updated", resp.Description)
}

func (s *TransactionHandlerTestSuite) TestUpdate_ForeignTransaction() {
	other := database.CreateTestUser(s.T(), s.db, "bob")
	txn := database.CreateTestTransaction(s.T(), s.db, other.ID, s.food.ID, models.TypeExpense, "20.00", "2025-02-01")

	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+txn.ID.String(), s.createBody("99.99"))
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("TRANSACTION_001", resp.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestDelete() {
	txn := database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "20.00", "2025-02-01")

	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+txn.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(txn.ID.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestDelete_MissingStillSucceeds() {
	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList_FiltersAndPagination() {
	salary := database.CreateTestCategory(s.T(), s.db, nil, "Salary", models.TypeIncome)
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, salary.ID, models.TypeIncome, "3000.00", "2025-01-31")
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "25.00", "2025-02-10")

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=income", "")
	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ListTransactionsResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Transactions, 1)
	s.Equal("income", resp.Transactions[0].Type)
	s.EqualValues(1, resp.Pagination.TotalCount)
	s.Equal(20, resp.Pagination.PageSize)
	s.Equal(1, resp.Pagination.Page)
}

func (s *TransactionHandlerTestSuite) TestList_MalformedFiltersIgnored() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "25.00", "2025-02-10")

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=bogus&category=not-a-uuid&date_from=02/10/2025", "")
	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ListTransactionsResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Transactions, 1)
}

func (s *TransactionHandlerTestSuite) TestList_GarbagePageFallsBackToFirst() {
	database.CreateTestTransaction(s.T(), s.db, s.user.ID, s.food.ID, models.TypeExpense, "25.00", "2025-02-10")

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?page=2abc", "")
	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ListTransactionsResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(1, resp.Pagination.Page)
	s.Len(resp.Transactions, 1)
}
