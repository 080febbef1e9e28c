package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice persistence operations.
// Issue and cancel commit together with the ledger entries they create or
// destroy, in a single transaction each.
type InvoiceRepository interface {
	// Create creates a new draft invoice in the database.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindByAccount retrieves all invoices where the account is issuer or payer.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Invoice, error)

	// Issue creates the payer expense entry and the issuer income entry and
	// links both to the invoice in a single transaction. The invoice row is
	// updated conditionally on still being a draft.
	Issue(ctx context.Context, invoice *entity.Invoice, expenseEntry, incomeEntry *entity.LedgerEntry) error

	// Cancel destroys both linked ledger entries and marks the invoice
	// canceled in a single transaction. The invoice row is updated
	// conditionally on still being issued.
	Cancel(ctx context.Context, invoice *entity.Invoice) error

	// MarkPaid transitions an issued invoice to paid.
	MarkPaid(ctx context.Context, invoice *entity.Invoice) error
}
