package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains the optional predicates that narrow transaction
// reads. A nil/empty field imposes no constraint; set fields are combined
// conjunctively and always bound as query parameters.
type TransactionFilters struct {
	Type       string
	CategoryID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}
