package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
// Issue and cancel follow the same conditional transition pattern as
// occurrence apply and cancel.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create creates a new draft invoice in the database.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceFromEntity(invoice)
	result := r.db.WithContext(ctx).Create(invoiceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an invoice by its ID.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindByAccount retrieves all invoices where the account is issuer or payer.
func (r *invoiceRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Where("issuer_account_id = ? OR payer_account_id = ?", accountID, accountID).
		Order("created_at DESC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i, im := range invoiceModels {
		invoices[i] = im.ToEntity()
	}
	return invoices, nil
}

// Issue creates both ledger entries and links them to the invoice in a single
// transaction. The invoice row is updated conditionally on still being a
// draft.
func (r *invoiceRepository) Issue(ctx context.Context, invoice *entity.Invoice, expenseEntry, incomeEntry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.LedgerEntryFromEntity(expenseEntry)).Error; err != nil {
			return err
		}
		if err := tx.Create(model.LedgerEntryFromEntity(incomeEntry)).Error; err != nil {
			return err
		}

		invoiceModel := model.InvoiceFromEntity(invoice)
		result := tx.Model(&model.InvoiceModel{}).
			Where("id = ? AND status = ?", invoice.ID, string(entity.InvoiceStatusDraft)).
			Updates(map[string]interface{}{
				"status":                  invoiceModel.Status,
				"issued_at":               invoiceModel.IssuedAt,
				"linked_expense_entry_id": invoiceModel.LinkedExpenseEntryID,
				"linked_income_entry_id":  invoiceModel.LinkedIncomeEntryID,
				"updated_at":              invoiceModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotDraft,
				"invoice state changed concurrently",
				domainerror.ErrInvoiceNotDraft,
			)
		}
		return nil
	})
}

// Cancel destroys both linked ledger entries and marks the invoice canceled
// in a single transaction. The linked entry IDs are read from the stored row,
// not from the caller's snapshot.
func (r *invoiceRepository) Cancel(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.InvoiceModel
		result := tx.Where("id = ?", invoice.ID).First(&stored)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvoiceNotFound
			}
			return result.Error
		}

		if stored.Status != string(entity.InvoiceStatusDraft) && stored.Status != string(entity.InvoiceStatusIssued) {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotIssued,
				"invoice state changed concurrently",
				domainerror.ErrInvoiceNotIssued,
			)
		}

		for _, entryID := range []*uuid.UUID{stored.LinkedExpenseEntryID, stored.LinkedIncomeEntryID} {
			if entryID == nil {
				continue
			}
			if err := tx.Unscoped().Delete(&model.LedgerEntryModel{}, "id = ?", *entryID).Error; err != nil {
				return err
			}
		}

		result = tx.Model(&model.InvoiceModel{}).
			Where("id = ? AND status = ?", invoice.ID, stored.Status).
			Updates(map[string]interface{}{
				"status":                  string(entity.InvoiceStatusCanceled),
				"linked_expense_entry_id": nil,
				"linked_income_entry_id":  nil,
				"updated_at":              time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotIssued,
				"invoice state changed concurrently",
				domainerror.ErrInvoiceNotIssued,
			)
		}
		return nil
	})
}

// MarkPaid transitions an issued invoice to paid.
func (r *invoiceRepository) MarkPaid(ctx context.Context, invoice *entity.Invoice) error {
	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("id = ? AND status = ?", invoice.ID, string(entity.InvoiceStatusIssued)).
		Updates(map[string]interface{}{
			"status":     string(entity.InvoiceStatusPaid),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotIssued,
			"invoice state changed concurrently",
			domainerror.ErrInvoiceNotIssued,
		)
	}
	return nil
}
