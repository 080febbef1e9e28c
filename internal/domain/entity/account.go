package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind represents the kind of ledger account.
type AccountKind string

const (
	AccountKindHousehold AccountKind = "household"
	AccountKindTeam      AccountKind = "team"
)

// Account represents a household or team ledger account. Categories, ledger
// entries, budgets and recurring templates all belong to exactly one account.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Kind      AccountKind
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, name string, kind AccountKind) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
