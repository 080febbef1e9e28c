package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// OccurrenceSyncPlan is the set of writes needed to converge a template's
// occurrences onto its effective range. Plans are computed from one snapshot
// of the occurrence set and applied atomically; the unique
// (template_id, period_month) constraint turns any residual race between two
// plans into a rejected insert instead of a silent duplicate.
type OccurrenceSyncPlan struct {
	// Create holds new scheduled occurrences for periods entering the range.
	Create []*entity.Occurrence
	// DeleteIDs holds scheduled occurrences whose period left the range.
	DeleteIDs []uuid.UUID
	// CancelIDs holds applied occurrences whose period left the range. Their
	// linked ledger entries are destroyed through the cancel path; the rows
	// themselves are preserved as canceled history.
	CancelIDs []uuid.UUID
}

// IsEmpty reports whether applying the plan would perform no writes.
func (p OccurrenceSyncPlan) IsEmpty() bool {
	return len(p.Create) == 0 && len(p.DeleteIDs) == 0 && len(p.CancelIDs) == 0
}

// UpcomingOccurrence is a scheduled occurrence joined with the context the
// reminder worker needs to address its owner.
type UpcomingOccurrence struct {
	Occurrence       *entity.Occurrence
	Template         *entity.RecurringTemplate
	AccountName      string
	UserEmail        string
	UserName         string
	RemindersEnabled bool
}

// RecurringRepository defines persistence for recurring templates and their
// occurrences. Template saves and occurrence synchronization commit in one
// database transaction, as do apply and cancel together with the ledger entry
// they create or destroy.
type RecurringRepository interface {
	// CreateTemplate inserts the template and applies the initial sync plan
	// in a single transaction.
	CreateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan OccurrenceSyncPlan) error

	// UpdateTemplate saves the template and applies the sync plan in a single
	// transaction.
	UpdateTemplate(ctx context.Context, template *entity.RecurringTemplate, plan OccurrenceSyncPlan) error

	// SyncOccurrences applies a sync plan for an unchanged template in a
	// single transaction (the periodic re-sync path for open-ended templates).
	SyncOccurrences(ctx context.Context, templateID uuid.UUID, plan OccurrenceSyncPlan) error

	// FindTemplateByID retrieves a template by its ID.
	FindTemplateByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error)

	// FindTemplatesByAccount retrieves all templates for an account.
	FindTemplatesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RecurringTemplate, error)

	// DeleteTemplate removes a template and all of its occurrences.
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	// FindOccurrencesByTemplate retrieves all occurrences for a template,
	// ordered by period month.
	FindOccurrencesByTemplate(ctx context.Context, templateID uuid.UUID) ([]*entity.Occurrence, error)

	// FindOccurrenceWithTemplate retrieves an occurrence together with its
	// owning template.
	FindOccurrenceWithTemplate(ctx context.Context, id uuid.UUID) (*entity.OccurrenceWithTemplate, error)

	// ApplyOccurrence creates the ledger entry and links it to the occurrence
	// in a single transaction. The occurrence row is updated conditionally on
	// still being scheduled; ErrOccurrenceStateChanged is returned (and the
	// entry insert rolled back) if a concurrent writer moved it first.
	ApplyOccurrence(ctx context.Context, occurrence *entity.Occurrence, entry *entity.LedgerEntry) error

	// CancelOccurrence destroys the occurrence's linked ledger entry and marks
	// it canceled in a single transaction. The occurrence row is updated
	// conditionally on still being applied.
	CancelOccurrence(ctx context.Context, occurrence *entity.Occurrence) error

	// FindUpcomingScheduled retrieves scheduled occurrences with occurs_on
	// inside [from, to], joined with owner contact data for reminders.
	FindUpcomingScheduled(ctx context.Context, from, to time.Time) ([]*UpcomingOccurrence, error)
}
