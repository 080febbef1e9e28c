package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListEntriesInput represents the input for listing ledger entries.
type ListEntriesInput struct {
	UserID     uuid.UUID
	Filter     adapter.EntryFilter
	Pagination adapter.EntryPagination
}

// ListEntriesOutput represents the output of listing ledger entries.
type ListEntriesOutput struct {
	Entries    []*entity.LedgerEntryWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListEntriesUseCase handles ledger entry listing logic.
type ListEntriesUseCase struct {
	entryRepo   adapter.EntryRepository
	accountRepo adapter.AccountRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.EntryRepository, accountRepo adapter.AccountRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// Execute lists the account's ledger entries with filters and pagination.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	if err := requireAccountOwnership(ctx, uc.accountRepo, input.Filter.AccountID, input.UserID); err != nil {
		return nil, err
	}

	pagination := input.Pagination
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = defaultPageLimit
	}
	if pagination.Limit > maxPageLimit {
		pagination.Limit = maxPageLimit
	}

	result, err := uc.entryRepo.FindByFilter(ctx, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &ListEntriesOutput{
		Entries:    result.Entries,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}, nil
}
