package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ApplyOccurrenceInput represents the input for applying an occurrence.
type ApplyOccurrenceInput struct {
	UserID       uuid.UUID
	OccurrenceID uuid.UUID
}

// ApplyOccurrenceOutput represents the output of applying an occurrence.
type ApplyOccurrenceOutput struct {
	Occurrence *entity.Occurrence
	Entry      *entity.LedgerEntry
}

// ApplyOccurrenceUseCase turns a scheduled occurrence into a real ledger
// entry. The entry snapshots the template's current title, amount, kind, and
// category; later template edits do not touch it.
type ApplyOccurrenceUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	clock         adapter.Clock
}

// NewApplyOccurrenceUseCase creates a new ApplyOccurrenceUseCase instance.
func NewApplyOccurrenceUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *ApplyOccurrenceUseCase {
	return &ApplyOccurrenceUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		clock:         clock,
	}
}

// Execute applies the occurrence. Only scheduled occurrences may be applied;
// the repository enforces the transition conditionally, so two concurrent
// applies produce exactly one ledger entry.
func (uc *ApplyOccurrenceUseCase) Execute(ctx context.Context, input ApplyOccurrenceInput) (*ApplyOccurrenceOutput, error) {
	found, err := uc.recurringRepo.FindOccurrenceWithTemplate(ctx, input.OccurrenceID)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceNotFound,
			"occurrence not found",
			domainerror.ErrOccurrenceNotFound,
		)
	}
	occurrence, template := found.Occurrence, found.Template

	if err := requireTemplateOwnership(ctx, uc.accountRepo, template.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if occurrence.Status != entity.OccurrenceStatusScheduled {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceNotScheduled,
			"only scheduled occurrences can be applied",
			domainerror.ErrOccurrenceNotScheduled,
		)
	}

	entry := entity.NewLedgerEntry(
		template.AccountID,
		template.CategoryID,
		template.Title,
		template.Amount,
		template.Kind,
		occurrence.OccursOn,
		entity.EntrySourceRecurring,
		input.UserID,
	)

	occurrence.MarkApplied(entity.LinkedEntryRef{
		Kind:    template.Kind,
		EntryID: entry.ID,
	}, uc.clock.Now().UTC())

	if err := uc.recurringRepo.ApplyOccurrence(ctx, occurrence, entry); err != nil {
		return nil, err
	}

	return &ApplyOccurrenceOutput{
		Occurrence: occurrence,
		Entry:      entry,
	}, nil
}
