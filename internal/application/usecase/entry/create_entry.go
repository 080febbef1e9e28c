// Package entry contains ledger entry use cases.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

const maxEntryTitleLength = 255

// CreateEntryInput represents the input for manual ledger entry creation.
type CreateEntryInput struct {
	UserID     uuid.UUID
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Title      string
	Amount     int64
	Kind       entity.EntryKind
	Date       time.Time
}

// CreateEntryOutput represents the output of ledger entry creation.
type CreateEntryOutput struct {
	Entry *entity.LedgerEntry
}

// CreateEntryUseCase handles manual ledger entry creation logic. Entries
// originating from recurring occurrences or invoices are created by their
// owning workflows, never through this use case.
type CreateEntryUseCase struct {
	entryRepo    adapter.EntryRepository
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	entryRepo adapter.EntryRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		entryRepo:    entryRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the ledger entry creation.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if err := requireAccountOwnership(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeMissingEntryFields,
			"title is required",
			nil,
		)
	}
	if len(input.Title) > maxEntryTitleLength {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEntryTitleTooLong,
			"title must be at most 255 characters",
			domainerror.ErrEntryTitleTooLong,
		)
	}

	if input.Kind != entity.EntryKindExpense && input.Kind != entity.EntryKindIncome {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidEntryKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidEntryKind,
		)
	}

	if input.Amount <= 0 {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidEntryAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidEntryAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category.AccountID != input.AccountID {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEntryCategoryNotFound,
			"category not found",
			domainerror.ErrEntryCategoryNotFound,
		)
	}

	entry := entity.NewLedgerEntry(
		input.AccountID,
		input.CategoryID,
		input.Title,
		input.Amount,
		input.Kind,
		input.Date,
		entity.EntrySourceManual,
		input.UserID,
	)

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return &CreateEntryOutput{Entry: entry}, nil
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
