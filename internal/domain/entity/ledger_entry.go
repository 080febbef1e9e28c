package entity

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind represents the kind of ledger entry (expense or income).
type EntryKind string

const (
	EntryKindExpense EntryKind = "expense"
	EntryKindIncome  EntryKind = "income"
)

// EntrySource records how a ledger entry came into existence.
type EntrySource string

const (
	EntrySourceManual    EntrySource = "manual"
	EntrySourceRecurring EntrySource = "recurring"
	EntrySourceInvoice   EntrySource = "invoice"
)

// LedgerEntry represents a single expense or income record on an account.
// Amounts are stored as integers in the minor currency unit and are always
// positive; Kind determines the sign of the entry's effect on the account.
type LedgerEntry struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Title      string
	Amount     int64
	Kind       EntryKind
	Date       time.Time
	Source     EntrySource
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewLedgerEntry creates a new LedgerEntry entity.
func NewLedgerEntry(
	accountID uuid.UUID,
	categoryID uuid.UUID,
	title string,
	amount int64,
	kind EntryKind,
	date time.Time,
	source EntrySource,
	createdBy uuid.UUID,
) *LedgerEntry {
	now := time.Now().UTC()
	return &LedgerEntry{
		ID:         uuid.New(),
		AccountID:  accountID,
		CategoryID: categoryID,
		Title:      title,
		Amount:     amount,
		Kind:       kind,
		Date:       date,
		Source:     source,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LedgerEntryWithCategory represents a ledger entry with its category loaded.
type LedgerEntryWithCategory struct {
	Entry    *LedgerEntry
	Category *Category
}
