package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// LedgerEntryModel represents the ledger_entries table in the database.
// Amounts are stored as integers in the minor currency unit.
type LedgerEntryModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Amount     int64          `gorm:"type:bigint;not null"`
	Kind       string         `gorm:"type:varchar(10);not null;index"`
	Date       time.Time      `gorm:"type:date;not null;index"`
	Source     string         `gorm:"type:varchar(10);not null;default:'manual'"`
	CreatedBy  uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the LedgerEntryModel.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToEntity converts a LedgerEntryModel to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToEntity() *entity.LedgerEntry {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.LedgerEntry{
		ID:         m.ID,
		AccountID:  m.AccountID,
		CategoryID: m.CategoryID,
		Title:      m.Title,
		Amount:     m.Amount,
		Kind:       entity.EntryKind(m.Kind),
		Date:       m.Date,
		Source:     entity.EntrySource(m.Source),
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// ToEntityWithCategory converts a LedgerEntryModel with its Category to a
// LedgerEntryWithCategory entity.
func (m *LedgerEntryModel) ToEntityWithCategory() *entity.LedgerEntryWithCategory {
	result := &entity.LedgerEntryWithCategory{
		Entry: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// LedgerEntryFromEntity creates a LedgerEntryModel from a domain LedgerEntry entity.
func LedgerEntryFromEntity(entry *entity.LedgerEntry) *LedgerEntryModel {
	var deletedAt gorm.DeletedAt
	if entry.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *entry.DeletedAt, Valid: true}
	}

	return &LedgerEntryModel{
		ID:         entry.ID,
		AccountID:  entry.AccountID,
		CategoryID: entry.CategoryID,
		Title:      entry.Title,
		Amount:     entry.Amount,
		Kind:       string(entry.Kind),
		Date:       entry.Date,
		Source:     string(entry.Source),
		CreatedBy:  entry.CreatedBy,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}
