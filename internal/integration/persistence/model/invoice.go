package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	IssuerAccountID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PayerAccountID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	IssuerCategoryID     uuid.UUID      `gorm:"type:uuid;not null"`
	PayerCategoryID      uuid.UUID      `gorm:"type:uuid;not null"`
	Title                string         `gorm:"type:varchar(255);not null"`
	Amount               int64          `gorm:"type:bigint;not null"`
	Status               string         `gorm:"type:varchar(10);not null;index"`
	BilledEntryIDs       pq.StringArray `gorm:"type:text[]"`
	IssuedAt             *time.Time     `gorm:"type:timestamp"`
	LinkedExpenseEntryID *uuid.UUID     `gorm:"type:uuid"`
	LinkedIncomeEntryID  *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt            time.Time      `gorm:"not null"`
	UpdatedAt            time.Time      `gorm:"not null"`
	DeletedAt            gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	IssuerAccount *AccountModel `gorm:"foreignKey:IssuerAccountID;references:ID"`
	PayerAccount  *AccountModel `gorm:"foreignKey:PayerAccountID;references:ID"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity. Billed entry
// IDs that fail to parse are skipped.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	billed := make([]uuid.UUID, 0, len(m.BilledEntryIDs))
	for _, raw := range m.BilledEntryIDs {
		if id, err := uuid.Parse(raw); err == nil {
			billed = append(billed, id)
		}
	}

	return &entity.Invoice{
		ID:                   m.ID,
		IssuerAccountID:      m.IssuerAccountID,
		PayerAccountID:       m.PayerAccountID,
		IssuerCategoryID:     m.IssuerCategoryID,
		PayerCategoryID:      m.PayerCategoryID,
		Title:                m.Title,
		Amount:               m.Amount,
		Status:               entity.InvoiceStatus(m.Status),
		BilledEntryIDs:       billed,
		IssuedAt:             m.IssuedAt,
		LinkedExpenseEntryID: m.LinkedExpenseEntryID,
		LinkedIncomeEntryID:  m.LinkedIncomeEntryID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	var deletedAt gorm.DeletedAt
	if invoice.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *invoice.DeletedAt, Valid: true}
	}

	billed := make(pq.StringArray, len(invoice.BilledEntryIDs))
	for i, id := range invoice.BilledEntryIDs {
		billed[i] = id.String()
	}

	return &InvoiceModel{
		ID:                   invoice.ID,
		IssuerAccountID:      invoice.IssuerAccountID,
		PayerAccountID:       invoice.PayerAccountID,
		IssuerCategoryID:     invoice.IssuerCategoryID,
		PayerCategoryID:      invoice.PayerCategoryID,
		Title:                invoice.Title,
		Amount:               invoice.Amount,
		Status:               string(invoice.Status),
		BilledEntryIDs:       billed,
		IssuedAt:             invoice.IssuedAt,
		LinkedExpenseEntryID: invoice.LinkedExpenseEntryID,
		LinkedIncomeEntryID:  invoice.LinkedIncomeEntryID,
		CreatedAt:            invoice.CreatedAt,
		UpdatedAt:            invoice.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
