package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Month       time.Time      `gorm:"type:date;not null;index"`
	LimitAmount int64          `gorm:"type:bigint;not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:          m.ID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Month:       m.Month,
		LimitAmount: m.LimitAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &BudgetModel{
		ID:          budget.ID,
		AccountID:   budget.AccountID,
		CategoryID:  budget.CategoryID,
		Month:       budget.Month,
		LimitAmount: budget.LimitAmount,
		CreatedAt:   budget.CreatedAt,
		UpdatedAt:   budget.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
