package persistence

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new ledger entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// Create creates a new ledger entry in the database.
func (r *entryRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a ledger entry by its ID.
func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByFilter retrieves ledger entries based on filter criteria with pagination.
func (r *entryRepository) FindByFilter(ctx context.Context, filter adapter.EntryFilter, pagination adapter.EntryPagination) (*adapter.EntryListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Where("account_id = ?", filter.AccountID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var entryModels []model.LedgerEntryModel
	offset := (pagination.Page - 1) * pagination.Limit
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LedgerEntryWithCategory, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntityWithCategory()
	}

	totalPages := int(math.Ceil(float64(total) / float64(pagination.Limit)))

	return &adapter.EntryListResult{
		Entries:    entries,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Delete soft-deletes a ledger entry from the database.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.LedgerEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// IsLinked checks whether the entry is owned by an applied occurrence or an
// issued invoice.
func (r *entryRepository) IsLinked(ctx context.Context, id uuid.UUID) (bool, error) {
	var occurrenceCount int64
	result := r.db.WithContext(ctx).
		Model(&model.OccurrenceModel{}).
		Where("linked_entry_id = ?", id).
		Count(&occurrenceCount)
	if result.Error != nil {
		return false, result.Error
	}
	if occurrenceCount > 0 {
		return true, nil
	}

	var invoiceCount int64
	result = r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("linked_expense_entry_id = ? OR linked_income_entry_id = ?", id, id).
		Count(&invoiceCount)
	if result.Error != nil {
		return false, result.Error
	}
	return invoiceCount > 0, nil
}

// SumByCategoryAndRange sums entry amounts of the given kind for one category
// within [start, end], in the minor currency unit.
func (r *entryRepository) SumByCategoryAndRange(ctx context.Context, categoryID uuid.UUID, kind entity.EntryKind, start, end time.Time) (decimal.Decimal, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category_id = ? AND kind = ? AND date >= ? AND date <= ?", categoryID, string(kind), start, end).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return decimal.NewFromInt(total), nil
}
