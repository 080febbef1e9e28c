package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// reminderScanInterval is how often the reminder worker looks for upcoming
// occurrences. The queue's per-day dedupe key keeps frequent scans from
// producing duplicate reminders.
const reminderScanInterval = 1 * time.Hour

// ReminderWorker periodically scans for scheduled occurrences falling due
// within the lead window and queues one digest email per recipient per day.
type ReminderWorker struct {
	recurringRepo adapter.RecurringRepository
	queue         adapter.EmailQueueRepository
	service       *Service
	clock         adapter.Clock
	leadDays      int
}

// NewReminderWorker creates a new reminder worker.
func NewReminderWorker(recurringRepo adapter.RecurringRepository, queue adapter.EmailQueueRepository, service *Service, clock adapter.Clock, leadDays int) *ReminderWorker {
	return &ReminderWorker{
		recurringRepo: recurringRepo,
		queue:         queue,
		service:       service,
		clock:         clock,
		leadDays:      leadDays,
	}
}

// Start begins the reminder loop. It blocks until the context is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	slog.Info("Reminder worker started", "lead_days", w.leadDays)

	ticker := time.NewTicker(reminderScanInterval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan finds upcoming scheduled occurrences and queues reminder digests.
func (w *ReminderWorker) scan(ctx context.Context) {
	now := w.clock.Now().UTC()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, w.leadDays)
	dayKey := now.Format("2006-01-02")

	upcoming, err := w.recurringRepo.FindUpcomingScheduled(ctx, from, to)
	if err != nil {
		slog.Error("Failed to load upcoming occurrences", "error", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	// Group by recipient so each user gets one digest for the whole window.
	type recipient struct {
		name  string
		items []ReminderItem
	}
	byEmail := make(map[string]*recipient)
	order := make([]string, 0)

	for _, occ := range upcoming {
		if !occ.RemindersEnabled {
			continue
		}
		r, ok := byEmail[occ.UserEmail]
		if !ok {
			r = &recipient{name: occ.UserName}
			byEmail[occ.UserEmail] = r
			order = append(order, occ.UserEmail)
		}
		r.items = append(r.items, ReminderItem{
			Title:       occ.Template.Title,
			AccountName: occ.AccountName,
			Amount:      formatReminderAmount(occ.Template.Amount, occ.Template.Kind),
			OccursOn:    occ.Occurrence.OccursOn.Format("2006-01-02"),
		})
	}

	for _, email := range order {
		r := byEmail[email]

		exists, err := w.queue.ExistsForRecipientAndDay(ctx, email, entity.TemplateOccurrenceReminder, dayKey)
		if err != nil {
			slog.Error("Failed to check reminder dedupe", "recipient", email, "error", err)
			continue
		}
		if exists {
			continue
		}

		input := QueueOccurrenceReminderInput{
			UserEmail: email,
			UserName:  r.name,
			DayKey:    dayKey,
			Items:     r.items,
		}
		if err := w.service.QueueOccurrenceReminder(ctx, input); err != nil {
			slog.Error("Failed to queue occurrence reminder", "recipient", email, "error", err)
			continue
		}

		slog.Info("Queued occurrence reminder",
			"recipient", email,
			"occurrences", len(r.items),
			"day_key", dayKey,
		)
	}
}

// ScanNow runs a single reminder scan immediately (useful for testing).
func (w *ReminderWorker) ScanNow(ctx context.Context) {
	w.scan(ctx)
}

// formatReminderAmount renders a minor-unit amount as a signed decimal string.
func formatReminderAmount(amountMinor int64, kind entity.EntryKind) string {
	value := decimal.NewFromInt(amountMinor).Div(decimal.NewFromInt(100))
	if kind == entity.EntryKindExpense {
		return "-" + value.StringFixed(2)
	}
	return "+" + value.StringFixed(2)
}
