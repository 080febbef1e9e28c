package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CancelOccurrenceInput represents the input for canceling an occurrence.
type CancelOccurrenceInput struct {
	UserID       uuid.UUID
	OccurrenceID uuid.UUID
}

// CancelOccurrenceOutput represents the output of canceling an occurrence.
type CancelOccurrenceOutput struct {
	Occurrence *entity.Occurrence
}

// CancelOccurrenceUseCase reverses an applied occurrence: the linked ledger
// entry is destroyed and the occurrence becomes canceled history. Canceled is
// terminal; the period is never regenerated.
type CancelOccurrenceUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	clock         adapter.Clock
}

// NewCancelOccurrenceUseCase creates a new CancelOccurrenceUseCase instance.
func NewCancelOccurrenceUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *CancelOccurrenceUseCase {
	return &CancelOccurrenceUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		clock:         clock,
	}
}

// Execute cancels the occurrence. Only applied occurrences may be canceled;
// scheduled ones are removed through template edits instead.
func (uc *CancelOccurrenceUseCase) Execute(ctx context.Context, input CancelOccurrenceInput) (*CancelOccurrenceOutput, error) {
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

	if occurrence.Status != entity.OccurrenceStatusApplied {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceNotApplied,
			"only applied occurrences can be canceled",
			domainerror.ErrOccurrenceNotApplied,
		)
	}

	occurrence.MarkCanceled(uc.clock.Now().UTC())

	if err := uc.recurringRepo.CancelOccurrence(ctx, occurrence); err != nil {
		return nil, err
	}

	return &CancelOccurrenceOutput{Occurrence: occurrence}, nil
}
