package database

import (
	"fmt"
	"log"
	"time"

	"expense-manager/internal/config"
	"expense-manager/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.RevokedToken{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_categories_type_name ON categories(type, name)",
		// Transaction indexes
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date ON transactions(transaction_date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, transaction_date)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// defaultGlobalCategories are the shared categories every account can use.
// They have no owner and are never editable through the API.
var defaultGlobalCategories = []struct {
	Name string
	Type string
}{
	{"Salary", models.TypeIncome},
	{"Freelance", models.TypeIncome},
	{"Investment", models.TypeIncome},
	{"Other Income", models.TypeIncome},
	{"Food", models.TypeExpense},
	{"Transportation", models.TypeExpense},
	{"Housing", models.TypeExpense},
	{"Utilities", models.TypeExpense},
	{"Entertainment", models.TypeExpense},
	{"Healthcare", models.TypeExpense},
	{"Shopping", models.TypeExpense},
	{"Other Expense", models.TypeExpense},
}

// SeedGlobalCategories inserts the shared category set if it is missing.
// Existing rows are left untouched so reseeding is safe.
func (db *DB) SeedGlobalCategories() error {
	for _, c := range defaultGlobalCategories {
		var count int64
		if err := db.DB.Model(&models.Category{}).
			Where("name = ? AND user_id IS NULL", c.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check global category %q: %w", c.Name, err)
		}

		if count > 0 {
			continue
		}

		category := &models.Category{Name: c.Name, Type: c.Type}
		if err := db.DB.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed global category %q: %w", c.Name, err)
		}
	}

	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Run SQL-based migrations using golang-migrate if enabled
	if err := RunMigrationsIfEnabled(sqlDB); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	if err := db.SeedGlobalCategories(); err != nil {
		log.Printf("Warning: failed to seed global categories: %v", err)
	}

	log.Println("Database initialized successfully")

	return db, nil
}
