package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ReconcileTemplateInput represents the input for occurrence reconciliation.
type ReconcileTemplateInput struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID
}

// ReconcileTemplateOutput reports the writes the reconciliation performed.
type ReconcileTemplateOutput struct {
	Created  int
	Deleted  int
	Canceled int
}

// ReconcileTemplateUseCase re-synchronizes a template's occurrences without
// changing the template. Open-ended templates rely on this being invoked
// periodically (or on read) to extend their generation horizon as time passes.
type ReconcileTemplateUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	clock         adapter.Clock
	horizonMonths int
}

// NewReconcileTemplateUseCase creates a new ReconcileTemplateUseCase instance.
func NewReconcileTemplateUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
	horizonMonths int,
) *ReconcileTemplateUseCase {
	return &ReconcileTemplateUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		clock:         clock,
		horizonMonths: horizonMonths,
	}
}

// Execute performs the reconciliation. Re-running it on an unchanged template
// within the same month performs no writes.
func (uc *ReconcileTemplateUseCase) Execute(ctx context.Context, input ReconcileTemplateInput) (*ReconcileTemplateOutput, error) {
	template, err := uc.recurringRepo.FindTemplateByID(ctx, input.TemplateID)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateNotFound,
			"recurring template not found",
			domainerror.ErrTemplateNotFound,
		)
	}

	if err := requireTemplateOwnership(ctx, uc.accountRepo, template.AccountID, input.UserID); err != nil {
		return nil, err
	}

	existing, err := uc.recurringRepo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrences: %w", err)
	}

	plan := PlanOccurrenceSync(template, existing, uc.clock.Now(), uc.horizonMonths)

	if !plan.IsEmpty() {
		if err := uc.recurringRepo.SyncOccurrences(ctx, template.ID, plan); err != nil {
			return nil, fmt.Errorf("failed to sync occurrences: %w", err)
		}
	}

	return &ReconcileTemplateOutput{
		Created:  len(plan.Create),
		Deleted:  len(plan.DeleteIDs),
		Canceled: len(plan.CancelIDs),
	}, nil
}
