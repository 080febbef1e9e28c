package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByAccountAndMonth retrieves all budgets for an account and month.
	FindByAccountAndMonth(ctx context.Context, accountID uuid.UUID, month time.Time) ([]*entity.Budget, error)

	// ExistsByCategoryAndMonth checks if a budget exists for the category and month.
	ExistsByCategoryAndMonth(ctx context.Context, categoryID uuid.UUID, month time.Time) (bool, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
