package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CancelInvoiceInput represents the input for invoice cancellation.
type CancelInvoiceInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
}

// CancelInvoiceOutput represents the output of invoice cancellation.
type CancelInvoiceOutput struct {
	Invoice *entity.Invoice
}

// CancelInvoiceUseCase reverses an issued invoice: both linked ledger entries
// are destroyed and the invoice becomes canceled history.
type CancelInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
}

// NewCancelInvoiceUseCase creates a new CancelInvoiceUseCase instance.
func NewCancelInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

// Execute cancels the invoice. Drafts are canceled without side effects;
// issued invoices lose both linked entries. Paid invoices cannot be canceled.
func (uc *CancelInvoiceUseCase) Execute(ctx context.Context, input CancelInvoiceInput) (*CancelInvoiceOutput, error) {
	invoice, err := findOwnedInvoice(ctx, uc.invoiceRepo, uc.accountRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != entity.InvoiceStatusDraft && invoice.Status != entity.InvoiceStatusIssued {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotIssued,
			"only draft or issued invoices can be canceled",
			domainerror.ErrInvoiceNotIssued,
		)
	}

	invoice.MarkCanceled(uc.clock.Now().UTC())

	if err := uc.invoiceRepo.Cancel(ctx, invoice); err != nil {
		return nil, err
	}

	return &CancelInvoiceOutput{Invoice: invoice}, nil
}
