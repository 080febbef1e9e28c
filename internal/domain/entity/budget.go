package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending limit for one category of an account.
// Month is always the first day of the month the budget covers.
type Budget struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Month       time.Time
	LimitAmount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(accountID, categoryID uuid.UUID, month time.Time, limitAmount int64) *Budget {
	now := time.Now().UTC()
	return &Budget{
		ID:          uuid.New(),
		AccountID:   accountID,
		CategoryID:  categoryID,
		Month:       month,
		LimitAmount: limitAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BudgetProgress is the read model for a budget with its current spending.
// Amounts are exposed as decimals in the major currency unit.
type BudgetProgress struct {
	Budget      *Budget
	Category    *Category
	SpentAmount decimal.Decimal
	LimitAmount decimal.Decimal
	UsedPercent decimal.Decimal
}
