package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ListInvoicesInput represents the input for listing invoices.
type ListInvoicesInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices []*entity.Invoice
}

// ListInvoicesUseCase handles invoice listing logic.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	accountRepo adapter.AccountRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository, accountRepo adapter.AccountRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
	}
}

// Execute lists invoices where the account is issuer or payer.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	owned, err := uc.accountRepo.IsOwnedBy(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	invoices, err := uc.invoiceRepo.FindByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &ListInvoicesOutput{Invoices: invoices}, nil
}
