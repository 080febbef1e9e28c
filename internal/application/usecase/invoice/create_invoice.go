// Package invoice contains inter-account invoice use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CreateInvoiceInput represents the input for draft invoice creation.
type CreateInvoiceInput struct {
	UserID           uuid.UUID
	IssuerAccountID  uuid.UUID
	PayerAccountID   uuid.UUID
	IssuerCategoryID uuid.UUID
	PayerCategoryID  uuid.UUID
	Title            string
	Amount           int64
	BilledEntryIDs   []uuid.UUID
}

// CreateInvoiceOutput represents the output of draft invoice creation.
type CreateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// CreateInvoiceUseCase handles draft invoice creation logic. The acting user
// must own both accounts; invoices move money between their own ledgers.
type CreateInvoiceUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the draft invoice creation.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	if input.IssuerAccountID == input.PayerAccountID {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeSameAccountInvoice,
			"issuer and payer accounts must differ",
			domainerror.ErrSameAccountInvoice,
		)
	}

	if input.Title == "" {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"title is required",
			nil,
		)
	}

	if input.Amount <= 0 {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidInvoiceAmount,
		)
	}

	for _, accountID := range []uuid.UUID{input.IssuerAccountID, input.PayerAccountID} {
		owned, err := uc.accountRepo.IsOwnedBy(ctx, accountID, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account ownership: %w", err)
		}
		if !owned {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
	}

	if err := uc.validateCategory(ctx, input.IssuerCategoryID, input.IssuerAccountID); err != nil {
		return nil, err
	}
	if err := uc.validateCategory(ctx, input.PayerCategoryID, input.PayerAccountID); err != nil {
		return nil, err
	}

	invoice := entity.NewInvoice(
		input.IssuerAccountID,
		input.PayerAccountID,
		input.IssuerCategoryID,
		input.PayerCategoryID,
		input.Title,
		input.Amount,
		input.BilledEntryIDs,
	)

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &CreateInvoiceOutput{Invoice: invoice}, nil
}

func (uc *CreateInvoiceUseCase) validateCategory(ctx context.Context, categoryID, accountID uuid.UUID) error {
	category, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil || category.AccountID != accountID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return nil
}
