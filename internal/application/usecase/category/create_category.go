// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Name      string
	Kind      entity.CategoryKind
	Color     string // Optional, defaults to DefaultCategoryColor
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	accountRepo  adapter.AccountRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, accountRepo adapter.AccountRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := requireAccountOwnership(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryField,
			"category name is required",
			nil,
		)
	}

	if input.Kind != entity.CategoryKindExpense && input.Kind != entity.CategoryKindIncome {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryKind,
		)
	}

	exists, err := uc.categoryRepo.ExistsByAccountAndName(ctx, input.AccountID, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTaken,
			"a category with this name already exists",
			domainerror.ErrCategoryNameTaken,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	category := entity.NewCategory(input.AccountID, input.Name, input.Kind, color)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}

// requireAccountOwnership checks that the account exists and belongs to the
// acting user.
func requireAccountOwnership(ctx context.Context, accountRepo adapter.AccountRepository, accountID, userID uuid.UUID) error {
	owned, err := accountRepo.IsOwnedBy(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	return nil
}
