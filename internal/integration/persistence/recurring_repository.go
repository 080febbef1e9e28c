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

// recurringRepository implements the adapter.RecurringRepository interface.
// Template saves, occurrence sync plans, and the apply/cancel transitions all
// commit inside single database transactions. Occurrence state transitions
// are conditional on the current status, so concurrent writers lose cleanly
// instead of double-writing.
type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring repository instance.
func NewRecurringRepository(db *gorm.DB) adapter.RecurringRepository {
	return &recurringRepository{
		db: db,
	}
}

// CreateTemplate inserts the template and applies the initial sync plan in a
// single transaction.
func (r *recurringRepository) CreateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan adapter.OccurrenceSyncPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templateModel := model.RecurringTemplateFromEntity(template)
		if err := tx.Create(templateModel).Error; err != nil {
			return err
		}
		return applySyncPlanTx(tx, plan)
	})
}

// UpdateTemplate saves the template and applies the sync plan in a single
// transaction.
func (r *recurringRepository) UpdateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan adapter.OccurrenceSyncPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		templateModel := model.RecurringTemplateFromEntity(template)
		if err := tx.Save(templateModel).Error; err != nil {
			return err
		}
		return applySyncPlanTx(tx, plan)
	})
}

// SyncOccurrences applies a sync plan for an unchanged template in a single
// transaction.
func (r *recurringRepository) SyncOccurrences(ctx context.Context, templateID uuid.UUID, plan adapter.OccurrenceSyncPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applySyncPlanTx(tx, plan)
	})
}

// applySyncPlanTx applies the plan's writes inside the given transaction.
// Scheduled occurrences leaving the range are hard-deleted; applied ones go
// through the cancel path so their ledger entries are destroyed with them.
func applySyncPlanTx(tx *gorm.DB, plan adapter.OccurrenceSyncPlan) error {
	if len(plan.DeleteIDs) > 0 {
		result := tx.
			Where("id IN ? AND status = ?", plan.DeleteIDs, string(entity.OccurrenceStatusScheduled)).
			Delete(&model.OccurrenceModel{})
		if result.Error != nil {
			return result.Error
		}
	}

	for _, id := range plan.CancelIDs {
		if err := cancelOccurrenceTx(tx, id); err != nil {
			// A concurrent cancel already converged this occurrence.
			if errors.Is(err, domainerror.ErrOccurrenceStateChanged) {
				continue
			}
			return err
		}
	}

	for _, occurrence := range plan.Create {
		occurrenceModel := model.OccurrenceFromEntity(occurrence)
		if err := tx.Create(occurrenceModel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.NewRecurringError(
					domainerror.ErrCodeDuplicatePeriod,
					"occurrence already exists for period",
					domainerror.ErrDuplicatePeriod,
				)
			}
			return err
		}
	}

	return nil
}

// cancelOccurrenceTx cancels one occurrence inside the given transaction:
// the linked ledger entry recorded on the row is destroyed and the row is
// marked canceled, conditional on it still being applied. This is the only
// code path that cancels occurrences.
func cancelOccurrenceTx(tx *gorm.DB, occurrenceID uuid.UUID) error {
	var occurrenceModel model.OccurrenceModel
	result := tx.
		Where("id = ?", occurrenceID).
		First(&occurrenceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return domainerror.ErrOccurrenceNotFound
		}
		return result.Error
	}

	if occurrenceModel.Status != string(entity.OccurrenceStatusApplied) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceStateChanged,
			"occurrence state changed concurrently",
			domainerror.ErrOccurrenceStateChanged,
		)
	}

	if occurrenceModel.LinkedEntryID != nil {
		result = tx.Unscoped().Delete(&model.LedgerEntryModel{}, "id = ?", *occurrenceModel.LinkedEntryID)
		if result.Error != nil {
			return result.Error
		}
	}

	result = tx.Model(&model.OccurrenceModel{}).
		Where("id = ? AND status = ?", occurrenceID, string(entity.OccurrenceStatusApplied)).
		Updates(map[string]interface{}{
			"status":            string(entity.OccurrenceStatusCanceled),
			"applied_at":        nil,
			"linked_entry_id":   nil,
			"linked_entry_kind": nil,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceStateChanged,
			"occurrence state changed concurrently",
			domainerror.ErrOccurrenceStateChanged,
		)
	}

	return nil
}

// FindTemplateByID retrieves a template by its ID.
func (r *recurringRepository) FindTemplateByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error) {
	var templateModel model.RecurringTemplateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&templateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTemplateNotFound
		}
		return nil, result.Error
	}
	return templateModel.ToEntity(), nil
}

// FindTemplatesByAccount retrieves all templates for an account.
func (r *recurringRepository) FindTemplatesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var templateModels []model.RecurringTemplateModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&templateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	templates := make([]*entity.RecurringTemplate, len(templateModels))
	for i, tm := range templateModels {
		templates[i] = tm.ToEntity()
	}
	return templates, nil
}

// DeleteTemplate removes a template and all of its occurrences. Ledger
// entries created by applied occurrences are kept.
func (r *recurringRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("template_id = ?", id).Delete(&model.OccurrenceModel{})
		if result.Error != nil {
			return result.Error
		}

		result = tx.Delete(&model.RecurringTemplateModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
}

// FindOccurrencesByTemplate retrieves all occurrences for a template, ordered
// by period month.
func (r *recurringRepository) FindOccurrencesByTemplate(ctx context.Context, templateID uuid.UUID) ([]*entity.Occurrence, error) {
	var occurrenceModels []model.OccurrenceModel
	result := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("period_month ASC").
		Find(&occurrenceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	occurrences := make([]*entity.Occurrence, len(occurrenceModels))
	for i, om := range occurrenceModels {
		occurrences[i] = om.ToEntity()
	}
	return occurrences, nil
}

// FindOccurrenceWithTemplate retrieves an occurrence together with its owning
// template.
func (r *recurringRepository) FindOccurrenceWithTemplate(ctx context.Context, id uuid.UUID) (*entity.OccurrenceWithTemplate, error) {
	var occurrenceModel model.OccurrenceModel
	result := r.db.WithContext(ctx).
		Preload("Template").
		Where("id = ?", id).
		First(&occurrenceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOccurrenceNotFound
		}
		return nil, result.Error
	}
	if occurrenceModel.Template == nil {
		return nil, domainerror.ErrTemplateNotFound
	}
	return occurrenceModel.ToEntityWithTemplate(), nil
}

// ApplyOccurrence creates the ledger entry and links it to the occurrence in
// a single transaction. The occurrence update is conditional on the row still
// being scheduled; losing the race rolls the entry insert back.
func (r *recurringRepository) ApplyOccurrence(ctx context.Context, occurrence *entity.Occurrence, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entryModel := model.LedgerEntryFromEntity(entry)
		if err := tx.Create(entryModel).Error; err != nil {
			return err
		}

		occurrenceModel := model.OccurrenceFromEntity(occurrence)
		result := tx.Model(&model.OccurrenceModel{}).
			Where("id = ? AND status = ?", occurrence.ID, string(entity.OccurrenceStatusScheduled)).
			Updates(map[string]interface{}{
				"status":            occurrenceModel.Status,
				"applied_at":        occurrenceModel.AppliedAt,
				"linked_entry_id":   occurrenceModel.LinkedEntryID,
				"linked_entry_kind": occurrenceModel.LinkedEntryKind,
				"updated_at":        occurrenceModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeOccurrenceStateChanged,
				"occurrence state changed concurrently",
				domainerror.ErrOccurrenceStateChanged,
			)
		}
		return nil
	})
}

// CancelOccurrence destroys the occurrence's linked ledger entry and marks it
// canceled in a single transaction.
func (r *recurringRepository) CancelOccurrence(ctx context.Context, occurrence *entity.Occurrence) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return cancelOccurrenceTx(tx, occurrence.ID)
	})
}

// FindUpcomingScheduled retrieves scheduled occurrences with occurs_on inside
// [from, to], joined with owner contact data for reminders.
func (r *recurringRepository) FindUpcomingScheduled(ctx context.Context, from, to time.Time) ([]*adapter.UpcomingOccurrence, error) {
	type upcomingRow struct {
		model.OccurrenceModel
		AccountName        string
		UserEmail          string
		UserName           string
		RecurringReminders bool
	}

	var rows []upcomingRow
	result := r.db.WithContext(ctx).
		Model(&model.OccurrenceModel{}).
		Select("occurrences.*, accounts.name AS account_name, users.email AS user_email, users.name AS user_name, users.recurring_reminders").
		Joins("JOIN recurring_templates ON recurring_templates.id = occurrences.template_id").
		Joins("JOIN accounts ON accounts.id = recurring_templates.account_id").
		Joins("JOIN users ON users.id = accounts.user_id").
		Where("occurrences.status = ?", string(entity.OccurrenceStatusScheduled)).
		Where("occurrences.occurs_on >= ? AND occurrences.occurs_on <= ?", from, to).
		Where("recurring_templates.deleted_at IS NULL AND accounts.deleted_at IS NULL").
		Order("occurrences.occurs_on ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(rows) == 0 {
		return nil, nil
	}

	templateIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		templateIDs = append(templateIDs, row.TemplateID)
	}

	var templateModels []model.RecurringTemplateModel
	if err := r.db.WithContext(ctx).Where("id IN ?", templateIDs).Find(&templateModels).Error; err != nil {
		return nil, err
	}
	templatesByID := make(map[uuid.UUID]*entity.RecurringTemplate, len(templateModels))
	for i := range templateModels {
		templatesByID[templateModels[i].ID] = templateModels[i].ToEntity()
	}

	upcoming := make([]*adapter.UpcomingOccurrence, 0, len(rows))
	for _, row := range rows {
		occurrenceModel := row.OccurrenceModel
		upcoming = append(upcoming, &adapter.UpcomingOccurrence{
			Occurrence:       occurrenceModel.ToEntity(),
			Template:         templatesByID[row.TemplateID],
			AccountName:      row.AccountName,
			UserEmail:        row.UserEmail,
			UserName:         row.UserName,
			RemindersEnabled: row.RecurringReminders,
		})
	}
	return upcoming, nil
}
