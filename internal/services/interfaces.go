package services

import (
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"

	"github.com/google/uuid"
)

// PasswordServiceInterface defines password hashing operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	ValidatePassword(password string) error
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

// AuthServiceInterface defines registration, login and logout operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error)
	Logout(accessToken string) error
	GetProfile(userID uuid.UUID) (*models.User, error)
}

// TransactionServiceInterface defines the transaction lifecycle. Every
// operation takes the acting user's identity explicitly; nothing below the
// handlers reads ambient session state.
type TransactionServiceInterface interface {
	Create(userID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	Update(userID, transactionID uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	Delete(userID, transactionID uuid.UUID) error
	Get(userID, transactionID uuid.UUID) (*models.Transaction, error)
	List(userID uuid.UUID, filters models.TransactionFilters, page int) ([]models.Transaction, int64, error)
}

// CategoryServiceInterface defines the category resolver operations
type CategoryServiceInterface interface {
	ListVisible(userID uuid.UUID) ([]models.Category, error)
	Create(userID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error)
}

// ReportServiceInterface defines the read-only aggregation views
type ReportServiceInterface interface {
	Summary(userID uuid.UUID, filters models.TransactionFilters) (*models.Summary, error)
	MonthlyTrend(userID uuid.UUID, filters models.TransactionFilters) ([]models.MonthlyTotal, error)
	CategoryBreakdown(userID uuid.UUID, filters models.TransactionFilters) ([]models.CategoryBreakdownRow, error)
	Dashboard(userID uuid.UUID) (*DashboardData, error)
}

// SampleDataServiceInterface seeds demo data in development environments
type SampleDataServiceInterface interface {
	SeedTransactions(userID uuid.UUID, count int) error
}

// MetricsRecorderInterface records domain metrics
type MetricsRecorderInterface interface {
	RecordTransactionCreated(transactionType string)
	RecordTransactionUpdated()
	RecordTransactionDeleted()
	RecordCategoryCreated()
	RecordReportQuery(report string)
	ObserveListDuration(d time.Duration)
}
