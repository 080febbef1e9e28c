package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// ListTemplatesInput represents the input for listing recurring templates.
type ListTemplatesInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// ListTemplatesOutput represents the output of listing recurring templates.
type ListTemplatesOutput struct {
	Templates []*entity.RecurringTemplate
}

// ListTemplatesUseCase handles recurring template listing logic.
type ListTemplatesUseCase struct {
	recurringRepo adapter.RecurringRepository
	accountRepo   adapter.AccountRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(recurringRepo adapter.RecurringRepository, accountRepo adapter.AccountRepository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
	}
}

// Execute lists the account's recurring templates.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, input ListTemplatesInput) (*ListTemplatesOutput, error) {
	if err := requireTemplateOwnership(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	templates, err := uc.recurringRepo.FindTemplatesByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	return &ListTemplatesOutput{Templates: templates}, nil
}
