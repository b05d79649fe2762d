package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRequest carries the form fields of the ad-hoc category creation
// endpoint.
type CategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
	Type string `json:"type" form:"type" validate:"required,transaction_type"`
}

// CategoryResponse is the JSON shape of a single category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsGlobal  bool      `json:"is_global"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryResponse mirrors the legacy ajax contract used by the
// category form: a success flag plus an optional message and new id.
type CreateCategoryResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}
