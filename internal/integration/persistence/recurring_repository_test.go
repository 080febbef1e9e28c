package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// One connection keeps the in-memory database alive and serialized.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.LedgerEntryModel{},
		&model.RecurringTemplateModel{},
		&model.OccurrenceModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

// seedTemplate inserts a user, account, category and open-ended template and
// returns the template entity.
func seedTemplate(t *testing.T, db *gorm.DB) *entity.RecurringTemplate {
	t.Helper()

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                 uuid.New(),
		Email:              "owner@example.com",
		Name:               "Owner",
		PasswordHash:       "x",
		EmailNotifications: true,
		RecurringReminders: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	account := &model.AccountModel{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      "Home",
		Kind:      "household",
		CreatedAt: now,
		UpdatedAt: now,
	}
	category := &model.CategoryModel{
		ID:        uuid.New(),
		AccountID: account.ID,
		Name:      "Rent",
		Kind:      "expense",
		Color:     "#4A90D9",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, row := range []interface{}{user, account, category} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}

	template := entity.NewRecurringTemplate(
		account.ID, category.ID, "Rent", entity.EntryKindExpense,
		150000, 5, false, month(2026, time.January), nil,
	)
	return template
}

func countRows(t *testing.T, db *gorm.DB, dest interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(dest).Unscoped().Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestRecurringRepository_CreateTemplate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	plan := adapter.OccurrenceSyncPlan{
		Create: []*entity.Occurrence{
			entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
			entity.NewOccurrence(template.ID, month(2026, time.February), time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)),
		},
	}

	if err := repo.CreateTemplate(ctx, template, plan); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	found, err := repo.FindTemplateByID(ctx, template.ID)
	if err != nil {
		t.Fatalf("failed to find template: %v", err)
	}
	if found.Title != "Rent" || found.Amount != 150000 {
		t.Errorf("unexpected template: %+v", found)
	}

	occurrences, err := repo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("failed to list occurrences: %v", err)
	}
	if len(occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occurrences))
	}
	if !occurrences[0].PeriodMonth.Before(occurrences[1].PeriodMonth) {
		t.Error("expected occurrences ordered by period month")
	}
	for _, occ := range occurrences {
		if occ.Status != entity.OccurrenceStatusScheduled {
			t.Errorf("expected scheduled status, got %s", occ.Status)
		}
	}
}

func TestRecurringRepository_SyncOccurrences_DuplicatePeriodRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	existing := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{existing}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	plan := adapter.OccurrenceSyncPlan{
		Create: []*entity.Occurrence{
			entity.NewOccurrence(template.ID, month(2026, time.March), time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)),
			entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
		},
	}

	err := repo.SyncOccurrences(ctx, template.ID, plan)
	if !errors.Is(err, domainerror.ErrDuplicatePeriod) {
		t.Fatalf("expected duplicate period error, got %v", err)
	}

	// The whole plan rolls back, including the valid March insert.
	occurrences, err := repo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("failed to list occurrences: %v", err)
	}
	if len(occurrences) != 1 {
		t.Errorf("expected rollback to leave 1 occurrence, got %d", len(occurrences))
	}
}

func TestRecurringRepository_ApplyOccurrence(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	occurrence := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{occurrence}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	appliedAt := time.Now().UTC()
	entry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, occurrence.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	occurrence.MarkApplied(entity.LinkedEntryRef{Kind: entry.Kind, EntryID: entry.ID}, appliedAt)

	if err := repo.ApplyOccurrence(ctx, occurrence, entry); err != nil {
		t.Fatalf("failed to apply occurrence: %v", err)
	}

	reloaded, err := repo.FindOccurrenceWithTemplate(ctx, occurrence.ID)
	if err != nil {
		t.Fatalf("failed to reload occurrence: %v", err)
	}
	if reloaded.Occurrence.Status != entity.OccurrenceStatusApplied {
		t.Errorf("expected applied status, got %s", reloaded.Occurrence.Status)
	}
	if reloaded.Occurrence.LinkedEntry == nil || reloaded.Occurrence.LinkedEntry.EntryID != entry.ID {
		t.Error("expected occurrence linked to the created entry")
	}
	if got := countRows(t, db, &model.LedgerEntryModel{}, "id = ?", entry.ID); got != 1 {
		t.Errorf("expected 1 ledger entry, got %d", got)
	}

	// A second apply loses the conditional update and rolls its entry back.
	secondEntry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, occurrence.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	err = repo.ApplyOccurrence(ctx, occurrence, secondEntry)
	if !errors.Is(err, domainerror.ErrOccurrenceStateChanged) {
		t.Fatalf("expected state changed error, got %v", err)
	}
	if got := countRows(t, db, &model.LedgerEntryModel{}, "id = ?", secondEntry.ID); got != 0 {
		t.Errorf("expected second entry rolled back, found %d rows", got)
	}
}

func TestRecurringRepository_CancelOccurrence(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	occurrence := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{occurrence}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	entry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, occurrence.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	occurrence.MarkApplied(entity.LinkedEntryRef{Kind: entry.Kind, EntryID: entry.ID}, time.Now().UTC())
	if err := repo.ApplyOccurrence(ctx, occurrence, entry); err != nil {
		t.Fatalf("failed to apply occurrence: %v", err)
	}

	if err := repo.CancelOccurrence(ctx, occurrence); err != nil {
		t.Fatalf("failed to cancel occurrence: %v", err)
	}

	reloaded, err := repo.FindOccurrenceWithTemplate(ctx, occurrence.ID)
	if err != nil {
		t.Fatalf("failed to reload occurrence: %v", err)
	}
	if reloaded.Occurrence.Status != entity.OccurrenceStatusCanceled {
		t.Errorf("expected canceled status, got %s", reloaded.Occurrence.Status)
	}
	if reloaded.Occurrence.AppliedAt != nil || reloaded.Occurrence.LinkedEntry != nil {
		t.Error("expected applied_at and entry link cleared")
	}

	// The linked entry is destroyed, not soft-deleted.
	if got := countRows(t, db, &model.LedgerEntryModel{}, "id = ?", entry.ID); got != 0 {
		t.Errorf("expected linked entry destroyed, found %d rows", got)
	}

	err = repo.CancelOccurrence(ctx, occurrence)
	if !errors.Is(err, domainerror.ErrOccurrenceStateChanged) {
		t.Fatalf("expected state changed error on double cancel, got %v", err)
	}
}

func TestRecurringRepository_SyncPlanDeletesAndCancels(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	applied := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	scheduled := entity.NewOccurrence(template.ID, month(2026, time.February), time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{applied, scheduled}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	entry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, applied.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	applied.MarkApplied(entity.LinkedEntryRef{Kind: entry.Kind, EntryID: entry.ID}, time.Now().UTC())
	if err := repo.ApplyOccurrence(ctx, applied, entry); err != nil {
		t.Fatalf("failed to apply occurrence: %v", err)
	}

	plan := adapter.OccurrenceSyncPlan{
		DeleteIDs: []uuid.UUID{scheduled.ID},
		CancelIDs: []uuid.UUID{applied.ID},
	}
	if err := repo.SyncOccurrences(ctx, template.ID, plan); err != nil {
		t.Fatalf("failed to sync occurrences: %v", err)
	}

	occurrences, err := repo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("failed to list occurrences: %v", err)
	}
	if len(occurrences) != 1 {
		t.Fatalf("expected 1 occurrence left, got %d", len(occurrences))
	}
	if occurrences[0].Status != entity.OccurrenceStatusCanceled {
		t.Errorf("expected remaining occurrence canceled, got %s", occurrences[0].Status)
	}
	if got := countRows(t, db, &model.LedgerEntryModel{}, "id = ?", entry.ID); got != 0 {
		t.Errorf("expected linked entry destroyed, found %d rows", got)
	}
}

func TestRecurringRepository_DeleteTemplate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	occurrence := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{occurrence}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	entry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, occurrence.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	occurrence.MarkApplied(entity.LinkedEntryRef{Kind: entry.Kind, EntryID: entry.ID}, time.Now().UTC())
	if err := repo.ApplyOccurrence(ctx, occurrence, entry); err != nil {
		t.Fatalf("failed to apply occurrence: %v", err)
	}

	if err := repo.DeleteTemplate(ctx, template.ID); err != nil {
		t.Fatalf("failed to delete template: %v", err)
	}

	if _, err := repo.FindTemplateByID(ctx, template.ID); !errors.Is(err, domainerror.ErrTemplateNotFound) {
		t.Errorf("expected template not found, got %v", err)
	}

	occurrences, err := repo.FindOccurrencesByTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("failed to list occurrences: %v", err)
	}
	if len(occurrences) != 0 {
		t.Errorf("expected occurrences removed, got %d", len(occurrences))
	}

	// Entries created by applied occurrences survive the template.
	if got := countRows(t, db, &model.LedgerEntryModel{}, "id = ?", entry.ID); got != 1 {
		t.Errorf("expected ledger entry kept, found %d rows", got)
	}
}

func TestRecurringRepository_FindUpcomingScheduled(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecurringRepository(db)

	template := seedTemplate(t, db)
	inWindow := entity.NewOccurrence(template.ID, month(2026, time.January), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	outOfWindow := entity.NewOccurrence(template.ID, month(2026, time.February), time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC))
	if err := repo.CreateTemplate(ctx, template, adapter.OccurrenceSyncPlan{Create: []*entity.Occurrence{inWindow, outOfWindow}}); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	from := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)
	upcoming, err := repo.FindUpcomingScheduled(ctx, from, to)
	if err != nil {
		t.Fatalf("failed to find upcoming occurrences: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming occurrence, got %d", len(upcoming))
	}
	if upcoming[0].Occurrence.ID != inWindow.ID {
		t.Error("expected the in-window occurrence")
	}
	if upcoming[0].UserEmail != "owner@example.com" {
		t.Errorf("expected owner email, got %s", upcoming[0].UserEmail)
	}
	if upcoming[0].AccountName != "Home" {
		t.Errorf("expected account name Home, got %s", upcoming[0].AccountName)
	}
	if !upcoming[0].RemindersEnabled {
		t.Error("expected reminders enabled")
	}
	if upcoming[0].Template == nil || upcoming[0].Template.ID != template.ID {
		t.Error("expected template loaded for upcoming occurrence")
	}

	// Applied occurrences are not reminded about.
	entry := entity.NewLedgerEntry(
		template.AccountID, template.CategoryID, template.Title,
		template.Amount, template.Kind, inWindow.OccursOn,
		entity.EntrySourceRecurring, uuid.New(),
	)
	inWindow.MarkApplied(entity.LinkedEntryRef{Kind: entry.Kind, EntryID: entry.ID}, time.Now().UTC())
	if err := repo.ApplyOccurrence(ctx, inWindow, entry); err != nil {
		t.Fatalf("failed to apply occurrence: %v", err)
	}

	upcoming, err = repo.FindUpcomingScheduled(ctx, from, to)
	if err != nil {
		t.Fatalf("failed to find upcoming occurrences: %v", err)
	}
	if len(upcoming) != 0 {
		t.Errorf("expected no upcoming occurrences after apply, got %d", len(upcoming))
	}
}
