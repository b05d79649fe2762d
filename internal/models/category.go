package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	ErrInvalidCategoryType  = errors.New("invalid category type")
	ErrCategoryNameRequired = errors.New("category name is required")
)

// Category groups transactions. A nil UserID marks a global category that is
// visible to every account; otherwise the category belongs to exactly one
// user. Categories are never updated or deleted once created.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Type      string     `gorm:"type:varchar(10);not null" json:"type"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}

	if !IsValidType(c.Type) {
		return ErrInvalidCategoryType
	}

	return nil
}

// IsGlobal reports whether the category is shared by all accounts.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}

// VisibleTo reports whether the category can be used by the given user.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.IsGlobal() || *c.UserID == userID
}

func (c *Category) TableName() string {
	return "categories"
}

// IsValidType checks if the type is one of the two supported flows.
func IsValidType(t string) bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	default:
		return false
	}
}
