package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// RecurringTemplateModel represents the recurring_templates table in the database.
type RecurringTemplateModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title         string         `gorm:"type:varchar(255);not null"`
	Kind          string         `gorm:"type:varchar(10);not null"`
	Amount        int64          `gorm:"type:bigint;not null"`
	DayOfMonth    int            `gorm:"type:integer;not null"`
	UseEndOfMonth bool           `gorm:"default:false"`
	EffectiveFrom time.Time      `gorm:"type:date;not null"`
	EffectiveTo   *time.Time     `gorm:"type:date"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the RecurringTemplateModel.
func (RecurringTemplateModel) TableName() string {
	return "recurring_templates"
}

// ToEntity converts a RecurringTemplateModel to a domain RecurringTemplate entity.
func (m *RecurringTemplateModel) ToEntity() *entity.RecurringTemplate {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.RecurringTemplate{
		ID:            m.ID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Title:         m.Title,
		Kind:          entity.EntryKind(m.Kind),
		Amount:        m.Amount,
		DayOfMonth:    m.DayOfMonth,
		UseEndOfMonth: m.UseEndOfMonth,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// RecurringTemplateFromEntity creates a RecurringTemplateModel from a domain
// RecurringTemplate entity.
func RecurringTemplateFromEntity(template *entity.RecurringTemplate) *RecurringTemplateModel {
	var deletedAt gorm.DeletedAt
	if template.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *template.DeletedAt, Valid: true}
	}

	return &RecurringTemplateModel{
		ID:            template.ID,
		AccountID:     template.AccountID,
		CategoryID:    template.CategoryID,
		Title:         template.Title,
		Kind:          string(template.Kind),
		Amount:        template.Amount,
		DayOfMonth:    template.DayOfMonth,
		UseEndOfMonth: template.UseEndOfMonth,
		EffectiveFrom: template.EffectiveFrom,
		EffectiveTo:   template.EffectiveTo,
		CreatedAt:     template.CreatedAt,
		UpdatedAt:     template.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
