package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// DeleteEntryInput represents the input for ledger entry deletion.
type DeleteEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// DeleteEntryUseCase handles ledger entry deletion logic.
type DeleteEntryUseCase struct {
	entryRepo   adapter.EntryRepository
	accountRepo adapter.AccountRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(entryRepo adapter.EntryRepository, accountRepo adapter.AccountRepository) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// Execute deletes the entry. Entries linked to an applied occurrence or an
// issued invoice are protected; they go away only when their owner is
// canceled, so the link never dangles.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return domainerror.NewEntryError(
			domainerror.ErrCodeEntryNotFound,
			"ledger entry not found",
			domainerror.ErrEntryNotFound,
		)
	}

	if err := requireAccountOwnership(ctx, uc.accountRepo, entry.AccountID, input.UserID); err != nil {
		return err
	}

	linked, err := uc.entryRepo.IsLinked(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to check entry links: %w", err)
	}
	if linked {
		return domainerror.NewEntryError(
			domainerror.ErrCodeEntryLinked,
			"entry belongs to a recurring occurrence or invoice; cancel that instead",
			domainerror.ErrEntryLinked,
		)
	}

	if err := uc.entryRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	return nil
}
