package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// UpdateTemplateInput represents the input for recurring template update.
// All rule fields are required; the handler layer merges partial payloads
// onto the current template before calling Execute.
type UpdateTemplateInput struct {
	UserID        uuid.UUID
	TemplateID    uuid.UUID
	CategoryID    uuid.UUID
	Title         string
	Kind          entity.EntryKind
	Amount        int64
	DayOfMonth    int
	UseEndOfMonth bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// UpdateTemplateOutput represents the output of recurring template update.
type UpdateTemplateOutput struct {
	Template *entity.RecurringTemplate
	Created  int
	Deleted  int
	Canceled int
}

// UpdateTemplateUseCase handles recurring template update logic.
type UpdateTemplateUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
	categoryRepo  adapter.CategoryRepository
	clock         adapter.Clock
	horizonMonths int
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	recurringRepo adapter.RecurringRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
	horizonMonths int,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		clock:         clock,
		horizonMonths: horizonMonths,
	}
}

// Execute saves the new rule and reconciles occurrences against it in one
// transaction. Amount and day changes apply only to occurrences generated
// from here on; existing in-range occurrences keep their original dates.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*UpdateTemplateOutput, error) {
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

	if input.CategoryID != template.CategoryID {
		if err := validateTemplateCategory(ctx, uc.categoryRepo, template.AccountID, input.CategoryID); err != nil {
			return nil, err
		}
	}

	template.CategoryID = input.CategoryID
	template.Title = rule.Title
	template.Kind = rule.Kind
	template.Amount = rule.Amount
	template.DayOfMonth = rule.DayOfMonth
	template.UseEndOfMonth = rule.UseEndOfMonth
	template.EffectiveFrom = rule.EffectiveFrom
	template.EffectiveTo = rule.EffectiveTo
	template.UpdatedAt = uc.clock.Now().UTC()

	existing, err := uc.recurringRepo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrences: %w", err)
	}

	plan := PlanOccurrenceSync(template, existing, uc.clock.Now(), uc.horizonMonths)

	if err := uc.recurringRepo.UpdateTemplate(ctx, template, plan); err != nil {
		return nil, fmt.Errorf("failed to update recurring template: %w", err)
	}

	return &UpdateTemplateOutput{
		Template: template,
		Created:  len(plan.Create),
		Deleted:  len(plan.DeleteIDs),
		Canceled: len(plan.CancelIDs),
	}, nil
}
