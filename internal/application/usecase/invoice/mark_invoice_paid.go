package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// MarkInvoicePaidInput represents the input for settling an invoice.
type MarkInvoicePaidInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
}

// MarkInvoicePaidOutput represents the output of settling an invoice.
type MarkInvoicePaidOutput struct {
	Invoice *entity.Invoice
}

// MarkInvoicePaidUseCase settles an issued invoice. The linked entries stay;
// paid is a bookkeeping state, not a reversal.
type MarkInvoicePaidUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
}

// NewMarkInvoicePaidUseCase creates a new MarkInvoicePaidUseCase instance.
func NewMarkInvoicePaidUseCase(
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *MarkInvoicePaidUseCase {
	return &MarkInvoicePaidUseCase{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

// Execute settles the invoice. Only issued invoices can be marked paid.
func (uc *MarkInvoicePaidUseCase) Execute(ctx context.Context, input MarkInvoicePaidInput) (*MarkInvoicePaidOutput, error) {
	invoice, err := findOwnedInvoice(ctx, uc.invoiceRepo, uc.accountRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != entity.InvoiceStatusIssued {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotIssued,
			"only issued invoices can be marked paid",
			domainerror.ErrInvoiceNotIssued,
		)
	}

	invoice.Status = entity.InvoiceStatusPaid
	invoice.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.invoiceRepo.MarkPaid(ctx, invoice); err != nil {
		return nil, err
	}

	return &MarkInvoicePaidOutput{Invoice: invoice}, nil
}
