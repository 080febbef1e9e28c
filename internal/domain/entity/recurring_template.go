package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxFixedDayOfMonth is the highest day-of-month a template may use without
// end-of-month clamping. Days 29-31 do not exist in every month, so they
// require UseEndOfMonth to be set.
const MaxFixedDayOfMonth = 28

// RecurringTemplate is the recurrence rule for a fixed monthly entry. Each
// template materializes one Occurrence per month of its effective range.
type RecurringTemplate struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	CategoryID    uuid.UUID
	Title         string
	Kind          EntryKind
	Amount        int64
	DayOfMonth    int
	UseEndOfMonth bool
	EffectiveFrom time.Time  // always day 1 of its month
	EffectiveTo   *time.Time // day 1 of its month; nil means open-ended
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewRecurringTemplate creates a new RecurringTemplate entity. Effective dates
// are expected to be normalized to the first day of their month by the caller.
func NewRecurringTemplate(
	accountID uuid.UUID,
	categoryID uuid.UUID,
	title string,
	kind EntryKind,
	amount int64,
	dayOfMonth int,
	useEndOfMonth bool,
	effectiveFrom time.Time,
	effectiveTo *time.Time,
) *RecurringTemplate {
	now := time.Now().UTC()
	return &RecurringTemplate{
		ID:            uuid.New(),
		AccountID:     accountID,
		CategoryID:    categoryID,
		Title:         title,
		Kind:          kind,
		Amount:        amount,
		DayOfMonth:    dayOfMonth,
		UseEndOfMonth: useEndOfMonth,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOpenEnded reports whether the template has no effective end month.
func (t *RecurringTemplate) IsOpenEnded() bool {
	return t.EffectiveTo == nil
}
