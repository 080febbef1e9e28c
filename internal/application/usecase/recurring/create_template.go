package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateTemplateInput represents the input for recurring template creation.
type CreateTemplateInput struct {
	UserID        uuid.UUID
	AccountID     uuid.UUID
	CategoryID    uuid.UUID
	Title         string
	Kind          entity.EntryKind
	Amount        int64
	DayOfMonth    int
	UseEndOfMonth bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil means open-ended
}

// CreateTemplateOutput represents the output of recurring template creation.
type CreateTemplateOutput struct {
	Template    *entity.RecurringTemplate
	Occurrences []*entity.Occurrence
}

// CreateTemplateUseCase handles recurring template creation logic.
type CreateTemplateUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	categoryRepo  adapter.CategoryRepository
	clock         adapter.Clock
	horizonMonths int
}

// NewCreateTemplateUseCase creates a new CreateTemplateUseCase instance.
func NewCreateTemplateUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
	horizonMonths int,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		clock:         clock,
		horizonMonths: horizonMonths,
	}
}

// Execute creates the template and materializes its initial occurrence set in
// one transaction.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input CreateTemplateInput) (*CreateTemplateOutput, error) {
	if err := requireTemplateOwnership(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	rule, err := validateRule(templateRule{
		Title:         input.Title,
		Kind:          input.Kind,
		Amount:        input.Amount,
		DayOfMonth:    input.DayOfMonth,
		UseEndOfMonth: input.UseEndOfMonth,
		EffectiveFrom: input.EffectiveFrom,
		EffectiveTo:   input.EffectiveTo,
	})
	if err != nil {
		return nil, err
	}

	if err := validateTemplateCategory(ctx, uc.categoryRepo, input.AccountID, input.CategoryID); err != nil {
		return nil, err
	}

	template := entity.NewRecurringTemplate(
		input.AccountID,
		input.CategoryID,
		rule.Title,
		rule.Kind,
		rule.Amount,
		rule.DayOfMonth,
		rule.UseEndOfMonth,
		rule.EffectiveFrom,
		rule.EffectiveTo,
	)

	plan := PlanOccurrenceSync(template, nil, uc.clock.Now(), uc.horizonMonths)

	if err := uc.recurringRepo.CreateTemplate(ctx, template, plan); err != nil {
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}

	return &CreateTemplateOutput{
		Template:    template,
		Occurrences: plan.Create,
	}, nil
}
