package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus represents the lifecycle state of an inter-account invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusIssued   InvoiceStatus = "issued"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

// Invoice bills one account on behalf of another. Issuing an invoice creates
// a linked expense entry on the payer account and an income entry on the
// issuer account; canceling destroys both again.
type Invoice struct {
	ID                   uuid.UUID
	IssuerAccountID      uuid.UUID
	PayerAccountID       uuid.UUID
	IssuerCategoryID     uuid.UUID
	PayerCategoryID      uuid.UUID
	Title                string
	Amount               int64
	Status               InvoiceStatus
	BilledEntryIDs       []uuid.UUID // ledger entries this invoice covers, if any
	IssuedAt             *time.Time
	LinkedExpenseEntryID *uuid.UUID
	LinkedIncomeEntryID  *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewInvoice creates a new draft Invoice entity.
func NewInvoice(
	issuerAccountID, payerAccountID uuid.UUID,
	issuerCategoryID, payerCategoryID uuid.UUID,
	title string,
	amount int64,
	billedEntryIDs []uuid.UUID,
) *Invoice {
	now := time.Now().UTC()
	return &Invoice{
		ID:               uuid.New(),
		IssuerAccountID:  issuerAccountID,
		PayerAccountID:   payerAccountID,
		IssuerCategoryID: issuerCategoryID,
		PayerCategoryID:  payerCategoryID,
		Title:            title,
		Amount:           amount,
		Status:           InvoiceStatusDraft,
		BilledEntryIDs:   billedEntryIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// MarkIssued transitions the invoice to issued with both linked entries set.
func (i *Invoice) MarkIssued(expenseEntryID, incomeEntryID uuid.UUID, at time.Time) {
	i.Status = InvoiceStatusIssued
	i.IssuedAt = &at
	i.LinkedExpenseEntryID = &expenseEntryID
	i.LinkedIncomeEntryID = &incomeEntryID
	i.UpdatedAt = at
}

// MarkCanceled transitions the invoice to canceled, clearing the entry links.
func (i *Invoice) MarkCanceled(at time.Time) {
	i.Status = InvoiceStatusCanceled
	i.LinkedExpenseEntryID = nil
	i.LinkedIncomeEntryID = nil
	i.UpdatedAt = at
}
