package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts owned by the given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// ExistsByUserAndName checks if the user already has an account with the name.
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// IsOwnedBy checks whether the account exists and belongs to the user.
	IsOwnedBy(ctx context.Context, accountID, userID uuid.UUID) (bool, error)
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByAccount retrieves all categories for an account.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Category, error)

	// ExistsByAccountAndName checks if the account already has a category with the name.
	ExistsByAccountAndName(ctx context.Context, accountID uuid.UUID, name string) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountReferences counts ledger entries and recurring templates still
	// referencing the category.
	CountReferences(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
