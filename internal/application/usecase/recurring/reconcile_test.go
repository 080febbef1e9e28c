package recurring

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

func newTestTemplate(from time.Time, to *time.Time, dayOfMonth int, useEndOfMonth bool) *entity.RecurringTemplate {
	return entity.NewRecurringTemplate(
		uuid.New(),
		uuid.New(),
		"Rent",
		entity.EntryKindExpense,
		120000,
		dayOfMonth,
		useEndOfMonth,
		from,
		to,
	)
}

func applyPlan(template *entity.RecurringTemplate, existing []*entity.Occurrence, now time.Time, horizon int) []*entity.Occurrence {
	plan := PlanOccurrenceSync(template, existing, now, horizon)

	removed := make(map[uuid.UUID]bool, len(plan.DeleteIDs))
	for _, id := range plan.DeleteIDs {
		removed[id] = true
	}
	canceled := make(map[uuid.UUID]bool, len(plan.CancelIDs))
	for _, id := range plan.CancelIDs {
		canceled[id] = true
	}

	var result []*entity.Occurrence
	for _, occurrence := range existing {
		if removed[occurrence.ID] {
			continue
		}
		if canceled[occurrence.ID] {
			occurrence.MarkCanceled(now)
		}
		result = append(result, occurrence)
	}
	return append(result, plan.Create...)
}

func TestPlanOccurrenceSyncBoundedRange(t *testing.T) {
	to := date(2025, time.June, 1)
	template := newTestTemplate(date(2025, time.January, 1), &to, 5, false)
	now := date(2025, time.March, 10)

	plan := PlanOccurrenceSync(template, nil, now, 3)

	if len(plan.Create) != 6 {
		t.Fatalf("expected 6 occurrences for Jan-Jun, got %d", len(plan.Create))
	}
	if len(plan.DeleteIDs) != 0 || len(plan.CancelIDs) != 0 {
		t.Errorf("expected no deletions or cancellations, got %d/%d", len(plan.DeleteIDs), len(plan.CancelIDs))
	}

	for i, occurrence := range plan.Create {
		wantPeriod := date(2025, time.January+time.Month(i), 1)
		if !occurrence.PeriodMonth.Equal(wantPeriod) {
			t.Errorf("occurrence %d period = %v, want %v", i, occurrence.PeriodMonth, wantPeriod)
		}
		if occurrence.OccursOn.Day() != 5 {
			t.Errorf("occurrence %d occurs on day %d, want 5", i, occurrence.OccursOn.Day())
		}
		if occurrence.Status != entity.OccurrenceStatusScheduled {
			t.Errorf("occurrence %d status = %s, want scheduled", i, occurrence.Status)
		}
	}
}

func TestPlanOccurrenceSyncEndOfMonthClamping(t *testing.T) {
	// Day 31 across December, January, and a non-leap February.
	to := date(2025, time.February, 1)
	template := newTestTemplate(date(2024, time.December, 1), &to, 31, true)

	plan := PlanOccurrenceSync(template, nil, date(2024, time.December, 15), 3)

	want := []time.Time{
		date(2024, time.December, 31),
		date(2025, time.January, 31),
		date(2025, time.February, 28),
	}
	if len(plan.Create) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(plan.Create))
	}
	for i, occurrence := range plan.Create {
		if !occurrence.OccursOn.Equal(want[i]) {
			t.Errorf("occurrence %d occurs on %v, want %v", i, occurrence.OccursOn, want[i])
		}
	}
}

func TestPlanOccurrenceSyncOpenEndedHorizon(t *testing.T) {
	template := newTestTemplate(date(2025, time.January, 1), nil, 10, false)
	now := date(2025, time.January, 15)

	plan := PlanOccurrenceSync(template, nil, now, 2)

	// January through March: current month plus two horizon months.
	if len(plan.Create) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(plan.Create))
	}
	lastPeriod := plan.Create[len(plan.Create)-1].PeriodMonth
	if !lastPeriod.Equal(date(2025, time.March, 1)) {
		t.Errorf("last period = %v, want 2025-03-01", lastPeriod)
	}
}

func TestPlanOccurrenceSyncHorizonSlidesForward(t *testing.T) {
	template := newTestTemplate(date(2025, time.January, 1), nil, 10, false)

	occurrences := applyPlan(template, nil, date(2025, time.January, 15), 2)

	// A month later the window extends by exactly one new period.
	plan := PlanOccurrenceSync(template, occurrences, date(2025, time.February, 15), 2)
	if len(plan.Create) != 1 {
		t.Fatalf("expected 1 new occurrence after a month, got %d", len(plan.Create))
	}
	if !plan.Create[0].PeriodMonth.Equal(date(2025, time.April, 1)) {
		t.Errorf("new period = %v, want 2025-04-01", plan.Create[0].PeriodMonth)
	}
	if len(plan.DeleteIDs) != 0 || len(plan.CancelIDs) != 0 {
		t.Errorf("sliding forward must not remove occurrences, got %d/%d", len(plan.DeleteIDs), len(plan.CancelIDs))
	}
}

func TestPlanOccurrenceSyncIdempotent(t *testing.T) {
	to := date(2025, time.December, 1)
	template := newTestTemplate(date(2025, time.January, 1), &to, 1, false)
	now := date(2025, time.June, 20)

	occurrences := applyPlan(template, nil, now, 3)

	plan := PlanOccurrenceSync(template, occurrences, now, 3)
	if !plan.IsEmpty() {
		t.Errorf("re-planning an unchanged template must be empty, got create=%d delete=%d cancel=%d",
			len(plan.Create), len(plan.DeleteIDs), len(plan.CancelIDs))
	}
}

func TestPlanOccurrenceSyncRangeShrink(t *testing.T) {
	to := date(2025, time.June, 1)
	template := newTestTemplate(date(2025, time.January, 1), &to, 1, false)
	now := date(2025, time.March, 5)

	occurrences := applyPlan(template, nil, now, 3)
	if len(occurrences) != 6 {
		t.Fatalf("setup expected 6 occurrences, got %d", len(occurrences))
	}

	// Apply March (index 2); it now holds a linked entry.
	occurrences[2].MarkApplied(entity.LinkedEntryRef{
		Kind:    entity.EntryKindExpense,
		EntryID: uuid.New(),
	}, now)

	// Shrink the range to end in February.
	newTo := date(2025, time.February, 1)
	template.EffectiveTo = &newTo

	plan := PlanOccurrenceSync(template, occurrences, now, 3)

	if len(plan.Create) != 0 {
		t.Errorf("shrink must not create occurrences, got %d", len(plan.Create))
	}
	// March was applied, so it is canceled; April through June were scheduled.
	if len(plan.CancelIDs) != 1 {
		t.Fatalf("expected 1 cancellation, got %d", len(plan.CancelIDs))
	}
	if plan.CancelIDs[0] != occurrences[2].ID {
		t.Errorf("canceled wrong occurrence: got %v, want %v", plan.CancelIDs[0], occurrences[2].ID)
	}
	if len(plan.DeleteIDs) != 3 {
		t.Errorf("expected 3 deletions for Apr-Jun, got %d", len(plan.DeleteIDs))
	}
}

func TestPlanOccurrenceSyncCanceledIsTerminal(t *testing.T) {
	to := date(2025, time.March, 1)
	template := newTestTemplate(date(2025, time.January, 1), &to, 1, false)
	now := date(2025, time.January, 15)

	occurrences := applyPlan(template, nil, now, 3)

	// February gets applied then canceled by the user.
	occurrences[1].MarkApplied(entity.LinkedEntryRef{
		Kind:    entity.EntryKindExpense,
		EntryID: uuid.New(),
	}, now)
	occurrences[1].MarkCanceled(now)

	// While in range, the canceled period is never regenerated.
	plan := PlanOccurrenceSync(template, occurrences, now, 3)
	if !plan.IsEmpty() {
		t.Errorf("canceled in-range period must not be touched, got create=%d delete=%d cancel=%d",
			len(plan.Create), len(plan.DeleteIDs), len(plan.CancelIDs))
	}

	// When it leaves the range, the record is preserved as history.
	newTo := date(2025, time.January, 1)
	template.EffectiveTo = &newTo
	plan = PlanOccurrenceSync(template, occurrences, now, 3)
	for _, id := range plan.DeleteIDs {
		if id == occurrences[1].ID {
			t.Error("canceled occurrence must never be deleted")
		}
	}
	for _, id := range plan.CancelIDs {
		if id == occurrences[1].ID {
			t.Error("canceled occurrence must not be re-canceled")
		}
	}
}

func TestPlanOccurrenceSyncExistingDatesFrozen(t *testing.T) {
	to := date(2025, time.April, 1)
	template := newTestTemplate(date(2025, time.January, 1), &to, 5, false)
	now := date(2025, time.February, 10)

	occurrences := applyPlan(template, nil, now, 3)

	// The rule moves from day 5 to day 20. Existing occurrences keep day 5.
	template.DayOfMonth = 20

	plan := PlanOccurrenceSync(template, occurrences, now, 3)
	if !plan.IsEmpty() {
		t.Fatalf("day change alone must not rewrite in-range occurrences")
	}
	for _, occurrence := range occurrences {
		if occurrence.OccursOn.Day() != 5 {
			t.Errorf("existing occurrence re-dated to day %d", occurrence.OccursOn.Day())
		}
	}

	// Extending the range creates the new month on the new day.
	newTo := date(2025, time.May, 1)
	template.EffectiveTo = &newTo
	plan = PlanOccurrenceSync(template, occurrences, now, 3)
	if len(plan.Create) != 1 {
		t.Fatalf("expected 1 new occurrence for May, got %d", len(plan.Create))
	}
	if plan.Create[0].OccursOn.Day() != 20 {
		t.Errorf("new occurrence on day %d, want 20", plan.Create[0].OccursOn.Day())
	}
}

func TestPlanOccurrenceSyncRangeGrowsBackward(t *testing.T) {
	to := date(2025, time.June, 1)
	template := newTestTemplate(date(2025, time.March, 1), &to, 1, false)
	now := date(2025, time.March, 2)

	occurrences := applyPlan(template, nil, now, 3)

	template.EffectiveFrom = date(2025, time.January, 1)

	plan := PlanOccurrenceSync(template, occurrences, now, 3)
	if len(plan.Create) != 2 {
		t.Fatalf("expected 2 backfilled occurrences, got %d", len(plan.Create))
	}
	if !plan.Create[0].PeriodMonth.Equal(date(2025, time.January, 1)) ||
		!plan.Create[1].PeriodMonth.Equal(date(2025, time.February, 1)) {
		t.Errorf("backfill periods = %v, %v", plan.Create[0].PeriodMonth, plan.Create[1].PeriodMonth)
	}
}
