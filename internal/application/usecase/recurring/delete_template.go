package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// DeleteTemplateInput represents the input for recurring template deletion.
type DeleteTemplateInput struct {
	UserID     uuid.UUID
	TemplateID uuid.UUID
}

// DeleteTemplateUseCase handles recurring template deletion logic.
type DeleteTemplateUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
}

// NewDeleteTemplateUseCase creates a new DeleteTemplateUseCase instance.
func NewDeleteTemplateUseCase(recurringRepo adapter.RecurringRepository, accountRepo adapter.AccountRepository) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
	}
}

// Execute deletes the template and all of its occurrences. Ledger entries
// already created by applied occurrences are kept; only the recurrence
// machinery is removed.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, input DeleteTemplateInput) error {
	template, err := uc.recurringRepo.FindTemplateByID(ctx, input.TemplateID)
	if err != nil {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateNotFound,
			"recurring template not found",
			domainerror.ErrTemplateNotFound,
		)
	}

	if err := requireTemplateOwnership(ctx, uc.accountRepo, template.AccountID, input.UserID); err != nil {
		return err
	}

	if err := uc.recurringRepo.DeleteTemplate(ctx, template.ID); err != nil {
		return fmt.Errorf("failed to delete recurring template: %w", err)
	}

	return nil
}
