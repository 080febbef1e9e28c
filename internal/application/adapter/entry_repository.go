package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// EntryFilter defines filter options for listing ledger entries.
type EntryFilter struct {
	AccountID   uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Kind        *entity.EntryKind
	Search      string // case-insensitive title match
}

// EntryPagination defines pagination options.
type EntryPagination struct {
	Page  int
	Limit int
}

// EntryListResult represents the result of listing ledger entries.
type EntryListResult struct {
	Entries    []*entity.LedgerEntryWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EntryRepository defines the interface for ledger entry persistence operations.
type EntryRepository interface {
	// Create creates a new ledger entry in the database.
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// FindByID retrieves a ledger entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)

	// FindByFilter retrieves ledger entries based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter EntryFilter, pagination EntryPagination) (*EntryListResult, error)

	// Delete soft-deletes a ledger entry from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsLinked checks whether the entry is owned by an applied occurrence or
	// an issued invoice. Linked entries cannot be deleted directly.
	IsLinked(ctx context.Context, id uuid.UUID) (bool, error)

	// SumByCategoryAndRange sums entry amounts of the given kind for one
	// category within [start, end], in the minor currency unit.
	SumByCategoryAndRange(ctx context.Context, categoryID uuid.UUID, kind entity.EntryKind, start, end time.Time) (decimal.Decimal, error)
}
