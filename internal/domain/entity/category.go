package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind represents the kind of category (expense or income).
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// Category represents an entry category scoped to a single account.
type Category struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Kind      CategoryKind
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Defaulting logic for the color is applied in the application layer before
// calling this constructor.
func NewCategory(accountID uuid.UUID, name string, kind CategoryKind, color string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
		Kind:      kind,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
