package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ListOccurrencesInput represents the input for listing a template's occurrences.
type ListOccurrencesInput struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID
	Status     *entity.OccurrenceStatus // Optional status filter
}

// ListOccurrencesOutput represents the output of listing occurrences.
type ListOccurrencesOutput struct {
	Template    *entity.RecurringTemplate
	Occurrences []*entity.Occurrence
}

// ListOccurrencesUseCase handles occurrence listing logic. Listing reconciles
// first, so open-ended templates grow their horizon on read without any
// external scheduler.
type ListOccurrencesUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	clock         adapter.Clock
	horizonMonths int
}

// NewListOccurrencesUseCase creates a new ListOccurrencesUseCase instance.
func NewListOccurrencesUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
	horizonMonths int,
) *ListOccurrencesUseCase {
	return &ListOccurrencesUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		clock:         clock,
		horizonMonths: horizonMonths,
	}
}

// Execute lists the template's occurrences ordered by period month.
func (uc *ListOccurrencesUseCase) Execute(ctx context.Context, input ListOccurrencesInput) (*ListOccurrencesOutput, error) {
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

	occurrences, err := uc.recurringRepo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list occurrences: %w", err)
	}

	plan := PlanOccurrenceSync(template, occurrences, uc.clock.Now(), uc.horizonMonths)
	if !plan.IsEmpty() {
		if err := uc.recurringRepo.SyncOccurrences(ctx, template.ID, plan); err != nil {
			return nil, fmt.Errorf("failed to sync occurrences: %w", err)
		}
		occurrences, err = uc.recurringRepo.FindOccurrencesByTemplate(ctx, template.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list occurrences: %w", err)
		}
	}

	if input.Status != nil {
		filtered := make([]*entity.Occurrence, 0, len(occurrences))
		for _, occurrence := range occurrences {
			if occurrence.Status == *input.Status {
				filtered = append(filtered, occurrence)
			}
		}
		occurrences = filtered
	}

	return &ListOccurrencesOutput{
		Template:    template,
		Occurrences: occurrences,
	}, nil
}
