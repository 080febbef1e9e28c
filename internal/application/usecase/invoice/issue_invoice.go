package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// IssueInvoiceInput represents the input for invoice issuing.
type IssueInvoiceInput struct {
	UserID    uuid.UUID
	InvoiceID uuid.UUID
}

// IssueInvoiceOutput represents the output of invoice issuing.
type IssueInvoiceOutput struct {
	Invoice      *entity.Invoice
	ExpenseEntry *entity.LedgerEntry
	IncomeEntry  *entity.LedgerEntry
}

// IssueInvoiceUseCase moves a draft invoice to issued, creating the payer
// expense entry and the issuer income entry in one transaction.
type IssueInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
}

// NewIssueInvoiceUseCase creates a new IssueInvoiceUseCase instance.
func NewIssueInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

// Execute issues the invoice. Only drafts can be issued.
func (uc *IssueInvoiceUseCase) Execute(ctx context.Context, input IssueInvoiceInput) (*IssueInvoiceOutput, error) {
	invoice, err := uc.findOwnedInvoice(ctx, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != entity.InvoiceStatusDraft {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotDraft,
			"only draft invoices can be issued",
			domainerror.ErrInvoiceNotDraft,
		)
	}

	now := uc.clock.Now().UTC()

	expenseEntry := entity.NewLedgerEntry(
		invoice.PayerAccountID,
		invoice.PayerCategoryID,
		invoice.Title,
		invoice.Amount,
		entity.EntryKindExpense,
		now,
		entity.EntrySourceInvoice,
		input.UserID,
	)
	incomeEntry := entity.NewLedgerEntry(
		invoice.IssuerAccountID,
		invoice.IssuerCategoryID,
		invoice.Title,
		invoice.Amount,
		entity.EntryKindIncome,
		now,
		entity.EntrySourceInvoice,
		input.UserID,
	)

	invoice.MarkIssued(expenseEntry.ID, incomeEntry.ID, now)

	if err := uc.invoiceRepo.Issue(ctx, invoice, expenseEntry, incomeEntry); err != nil {
		return nil, err
	}

	return &IssueInvoiceOutput{
		Invoice:      invoice,
		ExpenseEntry: expenseEntry,
		IncomeEntry:  incomeEntry,
	}, nil
}

// findOwnedInvoice loads the invoice and checks the acting user owns the
// issuer account.
func (uc *IssueInvoiceUseCase) findOwnedInvoice(ctx context.Context, invoiceID, userID uuid.UUID) (*entity.Invoice, error) {
	return findOwnedInvoice(ctx, uc.invoiceRepo, uc.accountRepo, invoiceID, userID)
}

func findOwnedInvoice(
	ctx context.Context,
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	invoiceID, userID uuid.UUID,
) (*entity.Invoice, error) {
	invoice, err := invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}

	owned, err := accountRepo.IsOwnedBy(ctx, invoice.IssuerAccountID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotOwned,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}

	return invoice, nil
}
