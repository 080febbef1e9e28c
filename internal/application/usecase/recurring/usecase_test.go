package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeAccountRepo struct {
	owners map[uuid.UUID]uuid.UUID // accountID -> userID
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }
func (r *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeAccountRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (r *fakeAccountRepo) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	return false, nil
}
func (r *fakeAccountRepo) IsOwnedBy(ctx context.Context, accountID, userID uuid.UUID) (bool, error) {
	return r.owners[accountID] == userID, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error { return nil }
func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return category, nil
}
func (r *fakeCategoryRepo) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) ExistsByAccountAndName(ctx context.Context, accountID uuid.UUID, name string) (bool, error) {
	return false, nil
}
func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (r *fakeCategoryRepo) CountReferences(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeRecurringRepo keeps templates and occurrences in memory and mimics the
// conditional state transitions of the real repository.
type fakeRecurringRepo struct {
	templates   map[uuid.UUID]*entity.RecurringTemplate
	occurrences map[uuid.UUID]*entity.Occurrence
	entries     map[uuid.UUID]*entity.LedgerEntry
}

func newFakeRecurringRepo() *fakeRecurringRepo {
	return &fakeRecurringRepo{
		templates:   make(map[uuid.UUID]*entity.RecurringTemplate),
		occurrences: make(map[uuid.UUID]*entity.Occurrence),
		entries:     make(map[uuid.UUID]*entity.LedgerEntry),
	}
}

func (r *fakeRecurringRepo) applyPlan(plan adapter.OccurrenceSyncPlan) {
	for _, id := range plan.DeleteIDs {
		delete(r.occurrences, id)
	}
	for _, id := range plan.CancelIDs {
		if occurrence, ok := r.occurrences[id]; ok {
			if occurrence.LinkedEntry != nil {
				delete(r.entries, occurrence.LinkedEntry.EntryID)
			}
			occurrence.MarkCanceled(time.Now().UTC())
		}
	}
	for _, occurrence := range plan.Create {
		r.occurrences[occurrence.ID] = occurrence
	}
}

func (r *fakeRecurringRepo) CreateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan adapter.OccurrenceSyncPlan) error {
	r.templates[template.ID] = template
	r.applyPlan(plan)
	return nil
}

func (r *fakeRecurringRepo) UpdateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan adapter.OccurrenceSyncPlan) error {
	r.templates[template.ID] = template
	r.applyPlan(plan)
	return nil
}

func (r *fakeRecurringRepo) SyncOccurrences(ctx context.Context, templateID uuid.UUID, plan adapter.OccurrenceSyncPlan) error {
	r.applyPlan(plan)
	return nil
}

func (r *fakeRecurringRepo) FindTemplateByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return template, nil
}

func (r *fakeRecurringRepo) FindTemplatesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RecurringTemplate, error) {
	var result []*entity.RecurringTemplate
	for _, template := range r.templates {
		if template.AccountID == accountID {
			result = append(result, template)
		}
	}
	return result, nil
}

func (r *fakeRecurringRepo) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	for occurrenceID, occurrence := range r.occurrences {
		if occurrence.TemplateID == id {
			delete(r.occurrences, occurrenceID)
		}
	}
	return nil
}

func (r *fakeRecurringRepo) FindOccurrencesByTemplate(ctx context.Context, templateID uuid.UUID) ([]*entity.Occurrence, error) {
	var result []*entity.Occurrence
	for _, occurrence := range r.occurrences {
		if occurrence.TemplateID == templateID {
			result = append(result, occurrence)
		}
	}
	return result, nil
}

func (r *fakeRecurringRepo) FindOccurrenceWithTemplate(ctx context.Context, id uuid.UUID) (*entity.OccurrenceWithTemplate, error) {
	occurrence, ok := r.occurrences[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	template, ok := r.templates[occurrence.TemplateID]
	if !ok {
		return nil, errors.New("record not found")
	}
	// Copy so usecases mutate their own snapshot, as with real row scans.
	occurrenceCopy := *occurrence
	return &entity.OccurrenceWithTemplate{Occurrence: &occurrenceCopy, Template: template}, nil
}

func (r *fakeRecurringRepo) ApplyOccurrence(ctx context.Context, occurrence *entity.Occurrence, entry *entity.LedgerEntry) error {
	stored, ok := r.occurrences[occurrence.ID]
	if !ok {
		return domainerror.ErrOccurrenceNotFound
	}
	if stored.Status != entity.OccurrenceStatusScheduled {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceStateChanged,
			"occurrence state changed concurrently",
			domainerror.ErrOccurrenceStateChanged,
		)
	}
	r.entries[entry.ID] = entry
	r.occurrences[occurrence.ID] = occurrence
	return nil
}

func (r *fakeRecurringRepo) CancelOccurrence(ctx context.Context, occurrence *entity.Occurrence) error {
	stored, ok := r.occurrences[occurrence.ID]
	if !ok {
		return domainerror.ErrOccurrenceNotFound
	}
	if stored.Status != entity.OccurrenceStatusApplied {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeOccurrenceStateChanged,
			"occurrence state changed concurrently",
			domainerror.ErrOccurrenceStateChanged,
		)
	}
	if stored.LinkedEntry != nil {
		delete(r.entries, stored.LinkedEntry.EntryID)
	}
	r.occurrences[occurrence.ID] = occurrence
	return nil
}

func (r *fakeRecurringRepo) FindUpcomingScheduled(ctx context.Context, from, to time.Time) ([]*adapter.UpcomingOccurrence, error) {
	return nil, nil
}

type testEnv struct {
	repo       *fakeRecurringRepo
	accounts   *fakeAccountRepo
	categories *fakeCategoryRepo
	clock      *fixedClock
	userID     uuid.UUID
	accountID  uuid.UUID
	categoryID uuid.UUID
}

func newTestEnv(now time.Time) *testEnv {
	userID := uuid.New()
	accountID := uuid.New()
	category := entity.NewCategory(accountID, "Housing", entity.CategoryKindExpense, entity.DefaultCategoryColor)

	return &testEnv{
		repo:       newFakeRecurringRepo(),
		accounts:   &fakeAccountRepo{owners: map[uuid.UUID]uuid.UUID{accountID: userID}},
		categories: &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{category.ID: category}},
		clock:      &fixedClock{now: now},
		userID:     userID,
		accountID:  accountID,
		categoryID: category.ID,
	}
}

func (env *testEnv) createTemplate(t *testing.T, input CreateTemplateInput) *CreateTemplateOutput {
	t.Helper()
	uc := NewCreateTemplateUseCase(env.repo, env.accounts, env.categories, env.clock, 3)
	output, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	return output
}

func (env *testEnv) validInput() CreateTemplateInput {
	return CreateTemplateInput{
		UserID:        env.userID,
		AccountID:     env.accountID,
		CategoryID:    env.categoryID,
		Title:         "Rent",
		Kind:          entity.EntryKindExpense,
		Amount:        120000,
		DayOfMonth:    5,
		UseEndOfMonth: false,
		EffectiveFrom: date(2025, time.January, 1),
	}
}

func TestCreateTemplate(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))

	output := env.createTemplate(t, env.validInput())

	if output.Template.ID == uuid.Nil {
		t.Error("template ID not assigned")
	}
	// Open-ended from January with horizon 3: January through April.
	if len(output.Occurrences) != 4 {
		t.Errorf("expected 4 occurrences, got %d", len(output.Occurrences))
	}
	if len(env.repo.occurrences) != 4 {
		t.Errorf("expected 4 persisted occurrences, got %d", len(env.repo.occurrences))
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))
	uc := NewCreateTemplateUseCase(env.repo, env.accounts, env.categories, env.clock, 3)

	tests := []struct {
		name    string
		mutate  func(*CreateTemplateInput)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(in *CreateTemplateInput) { in.Amount = 0 },
			wantErr: domainerror.ErrInvalidTemplateAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(in *CreateTemplateInput) { in.Amount = -500 },
			wantErr: domainerror.ErrInvalidTemplateAmount,
		},
		{
			name:    "day zero",
			mutate:  func(in *CreateTemplateInput) { in.DayOfMonth = 0 },
			wantErr: domainerror.ErrInvalidDayOfMonth,
		},
		{
			name:    "day thirty-two",
			mutate:  func(in *CreateTemplateInput) { in.DayOfMonth = 32 },
			wantErr: domainerror.ErrInvalidDayOfMonth,
		},
		{
			name:    "day 31 without end-of-month clamping",
			mutate:  func(in *CreateTemplateInput) { in.DayOfMonth = 31 },
			wantErr: domainerror.ErrInvalidDayOfMonth,
		},
		{
			name:    "invalid kind",
			mutate:  func(in *CreateTemplateInput) { in.Kind = "transfer" },
			wantErr: domainerror.ErrInvalidTemplateKind,
		},
		{
			name: "effective end before start",
			mutate: func(in *CreateTemplateInput) {
				to := date(2024, time.June, 1)
				in.EffectiveTo = &to
			},
			wantErr: domainerror.ErrInvalidEffectiveRange,
		},
		{
			name:    "unknown category",
			mutate:  func(in *CreateTemplateInput) { in.CategoryID = uuid.New() },
			wantErr: domainerror.ErrTemplateCategoryNotFound,
		},
		{
			name:    "foreign account",
			mutate:  func(in *CreateTemplateInput) { in.AccountID = uuid.New() },
			wantErr: domainerror.ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := env.validInput()
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateTemplateDayThirtyOneWithClamping(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))

	input := env.validInput()
	input.DayOfMonth = 31
	input.UseEndOfMonth = true
	to := date(2025, time.February, 1)
	input.EffectiveTo = &to

	output := env.createTemplate(t, input)

	if len(output.Occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(output.Occurrences))
	}
	if output.Occurrences[1].OccursOn.Day() != 28 {
		t.Errorf("February occurrence on day %d, want 28", output.Occurrences[1].OccursOn.Day())
	}
}

func TestUpdateTemplateReconciles(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))

	to := date(2025, time.June, 1)
	input := env.validInput()
	input.EffectiveTo = &to
	created := env.createTemplate(t, input)

	uc := NewUpdateTemplateUseCase(env.repo, env.accounts, env.categories, env.clock, 3)
	newTo := date(2025, time.March, 1)
	output, err := uc.Execute(context.Background(), UpdateTemplateInput{
		UserID:        env.userID,
		TemplateID:    created.Template.ID,
		CategoryID:    env.categoryID,
		Title:         "Rent",
		Kind:          entity.EntryKindExpense,
		Amount:        135000,
		DayOfMonth:    5,
		EffectiveFrom: date(2025, time.January, 1),
		EffectiveTo:   &newTo,
	})
	if err != nil {
		t.Fatalf("update template failed: %v", err)
	}

	if output.Template.Amount != 135000 {
		t.Errorf("amount not updated: %d", output.Template.Amount)
	}
	if output.Deleted != 3 {
		t.Errorf("expected 3 deleted occurrences for Apr-Jun, got %d", output.Deleted)
	}
	if len(env.repo.occurrences) != 3 {
		t.Errorf("expected 3 remaining occurrences, got %d", len(env.repo.occurrences))
	}
}

func TestApplyAndCancelOccurrence(t *testing.T) {
	now := date(2025, time.January, 15)
	env := newTestEnv(now)

	created := env.createTemplate(t, env.validInput())
	occurrence := created.Occurrences[0]

	applyUC := NewApplyOccurrenceUseCase(env.repo, env.accounts, env.clock)
	applied, err := applyUC.Execute(context.Background(), ApplyOccurrenceInput{
		UserID:       env.userID,
		OccurrenceID: occurrence.ID,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if applied.Occurrence.Status != entity.OccurrenceStatusApplied {
		t.Errorf("status = %s, want applied", applied.Occurrence.Status)
	}
	if applied.Entry.Amount != 120000 || applied.Entry.Kind != entity.EntryKindExpense {
		t.Errorf("entry snapshot mismatch: amount=%d kind=%s", applied.Entry.Amount, applied.Entry.Kind)
	}
	if !applied.Entry.Date.Equal(occurrence.OccursOn) {
		t.Errorf("entry date = %v, want %v", applied.Entry.Date, occurrence.OccursOn)
	}
	if applied.Occurrence.LinkedEntry == nil || applied.Occurrence.LinkedEntry.EntryID != applied.Entry.ID {
		t.Error("occurrence not linked to created entry")
	}
	if len(env.repo.entries) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(env.repo.entries))
	}

	// A second apply hits the state machine guard.
	_, err = applyUC.Execute(context.Background(), ApplyOccurrenceInput{
		UserID:       env.userID,
		OccurrenceID: occurrence.ID,
	})
	if !errors.Is(err, domainerror.ErrOccurrenceNotScheduled) {
		t.Errorf("second apply: expected ErrOccurrenceNotScheduled, got %v", err)
	}

	cancelUC := NewCancelOccurrenceUseCase(env.repo, env.accounts, env.clock)
	canceled, err := cancelUC.Execute(context.Background(), CancelOccurrenceInput{
		UserID:       env.userID,
		OccurrenceID: occurrence.ID,
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if canceled.Occurrence.Status != entity.OccurrenceStatusCanceled {
		t.Errorf("status = %s, want canceled", canceled.Occurrence.Status)
	}
	if canceled.Occurrence.LinkedEntry != nil {
		t.Error("canceled occurrence still holds an entry link")
	}
	if len(env.repo.entries) != 0 {
		t.Errorf("linked entry not destroyed, %d entries remain", len(env.repo.entries))
	}

	// Canceling a scheduled or already canceled occurrence is rejected.
	_, err = cancelUC.Execute(context.Background(), CancelOccurrenceInput{
		UserID:       env.userID,
		OccurrenceID: occurrence.ID,
	})
	if !errors.Is(err, domainerror.ErrOccurrenceNotApplied) {
		t.Errorf("second cancel: expected ErrOccurrenceNotApplied, got %v", err)
	}
}

func TestCancelScheduledOccurrenceRejected(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))
	created := env.createTemplate(t, env.validInput())

	cancelUC := NewCancelOccurrenceUseCase(env.repo, env.accounts, env.clock)
	_, err := cancelUC.Execute(context.Background(), CancelOccurrenceInput{
		UserID:       env.userID,
		OccurrenceID: created.Occurrences[0].ID,
	})
	if !errors.Is(err, domainerror.ErrOccurrenceNotApplied) {
		t.Errorf("expected ErrOccurrenceNotApplied, got %v", err)
	}
}

func TestReconcileTemplateSlidesHorizon(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))
	created := env.createTemplate(t, env.validInput())

	uc := NewReconcileTemplateUseCase(env.repo, env.accounts, env.clock, 3)

	// Same month: nothing to do.
	output, err := uc.Execute(context.Background(), ReconcileTemplateInput{
		UserID:     env.userID,
		TemplateID: created.Template.ID,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if output.Created != 0 || output.Deleted != 0 || output.Canceled != 0 {
		t.Errorf("same-month reconcile wrote: %+v", output)
	}

	// Two months later the horizon has moved by two periods.
	env.clock.now = date(2025, time.March, 10)
	output, err = uc.Execute(context.Background(), ReconcileTemplateInput{
		UserID:     env.userID,
		TemplateID: created.Template.ID,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if output.Created != 2 {
		t.Errorf("expected 2 new occurrences, got %d", output.Created)
	}
	if len(env.repo.occurrences) != 6 {
		t.Errorf("expected 6 occurrences total, got %d", len(env.repo.occurrences))
	}
}

func TestDeleteTemplateRemovesOccurrences(t *testing.T) {
	env := newTestEnv(date(2025, time.January, 15))
	created := env.createTemplate(t, env.validInput())

	uc := NewDeleteTemplateUseCase(env.repo, env.accounts)
	if err := uc.Execute(context.Background(), DeleteTemplateInput{
		UserID:     env.userID,
		TemplateID: created.Template.ID,
	}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(env.repo.templates) != 0 || len(env.repo.occurrences) != 0 {
		t.Errorf("template or occurrences remain after delete: %d/%d",
			len(env.repo.templates), len(env.repo.occurrences))
	}

	// Deleting again reports not found.
	err := uc.Execute(context.Background(), DeleteTemplateInput{
		UserID:     env.userID,
		TemplateID: created.Template.ID,
	})
	if !errors.Is(err, domainerror.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}
