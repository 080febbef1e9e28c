package recurring

import (
	"time"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// PlanOccurrenceSync diffs a template's target period set against its
// existing occurrences and returns the writes needed to converge them.
//
// The target set runs from the template's effective start month through its
// effective end month, or, for open-ended templates, through the current
// month plus horizonMonths. The boundary is re-evaluated on every call, so
// the generated window slides forward as real time advances.
//
// Convergence rules:
//   - a target period with no occurrence gets a new scheduled occurrence,
//     dated by the day-of-month rule in effect now;
//   - an out-of-range scheduled occurrence is deleted (it was never realized);
//   - an out-of-range applied occurrence is canceled, which destroys its
//     linked ledger entry but preserves the row as history;
//   - out-of-range canceled occurrences and all in-range occurrences are left
//     untouched, whatever their status or date.
//
// The last rule makes the plan idempotent: re-planning an unchanged template
// yields an empty plan, and existing occurrences are never re-dated or
// re-priced when the template's rule changes.
func PlanOccurrenceSync(
	template *entity.RecurringTemplate,
	existing []*entity.Occurrence,
	now time.Time,
	horizonMonths int,
) adapter.OccurrenceSyncPlan {
	last := MonthStart(now).AddDate(0, horizonMonths, 0)
	if template.EffectiveTo != nil {
		last = MonthStart(*template.EffectiveTo)
	}
	target := monthsThrough(template.EffectiveFrom, last)

	inRange := make(map[time.Time]bool, len(target))
	for _, period := range target {
		inRange[period] = true
	}

	byPeriod := make(map[time.Time]*entity.Occurrence, len(existing))
	for _, occurrence := range existing {
		byPeriod[MonthStart(occurrence.PeriodMonth)] = occurrence
	}

	var plan adapter.OccurrenceSyncPlan

	for _, period := range target {
		if _, exists := byPeriod[period]; exists {
			continue
		}
		occursOn := ResolveOccursOn(period.Year(), period.Month(), template.DayOfMonth, template.UseEndOfMonth)
		plan.Create = append(plan.Create, entity.NewOccurrence(template.ID, period, occursOn))
	}

	for _, occurrence := range existing {
		if inRange[MonthStart(occurrence.PeriodMonth)] {
			continue
		}
		switch occurrence.Status {
		case entity.OccurrenceStatusScheduled:
			plan.DeleteIDs = append(plan.DeleteIDs, occurrence.ID)
		case entity.OccurrenceStatusApplied:
			plan.CancelIDs = append(plan.CancelIDs, occurrence.ID)
		case entity.OccurrenceStatusCanceled:
			// Terminal history; never deleted, never regenerated.
		}
	}

	return plan
}
