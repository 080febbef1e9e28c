package email

import (
	"context"
	"fmt"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ReminderItem is one upcoming occurrence carried in a queued reminder job.
type ReminderItem struct {
	Title       string
	AccountName string
	Amount      string
	OccursOn    string
}

// QueueOccurrenceReminderInput is the input for queueing a reminder email.
type QueueOccurrenceReminderInput struct {
	UserEmail string
	UserName  string
	DayKey    string
	Items     []ReminderItem
}

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueueOccurrenceReminder queues a reminder email listing a user's upcoming
// scheduled occurrences. DayKey scopes the queue's dedupe guard so each
// recipient gets at most one reminder per calendar day.
func (s *Service) QueueOccurrenceReminder(ctx context.Context, input QueueOccurrenceReminderInput) error {
	subject := fmt.Sprintf("%d upcoming recurring entries - Household Ledger", len(input.Items))
	if len(input.Items) == 1 {
		subject = "1 upcoming recurring entry - Household Ledger"
	}

	items := make([]map[string]interface{}, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, map[string]interface{}{
			"title":        item.Title,
			"account_name": item.AccountName,
			"amount":       item.Amount,
			"occurs_on":    item.OccursOn,
		})
	}

	templateData := map[string]interface{}{
		"user_name": input.UserName,
		"day_key":   input.DayKey,
		"items":     items,
	}

	job := entity.NewEmailJob(
		entity.TemplateOccurrenceReminder,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue occurrence reminder email",
			err,
		)
	}

	return nil
}
