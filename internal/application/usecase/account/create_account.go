// Package account contains ledger account use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID uuid.UUID
	Name   string
	Kind   entity.AccountKind
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountField,
			"account name is required",
			nil,
		)
	}

	if input.Kind != entity.AccountKindHousehold && input.Kind != entity.AccountKindTeam {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountKind,
			"kind must be 'household' or 'team'",
			domainerror.ErrInvalidAccountKind,
		)
	}

	exists, err := uc.accountRepo.ExistsByUserAndName(ctx, input.UserID, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check account name: %w", err)
	}
	if exists {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameTaken,
			"an account with this name already exists",
			domainerror.ErrAccountNameTaken,
		)
	}

	account := entity.NewAccount(input.UserID, input.Name, input.Kind)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}
