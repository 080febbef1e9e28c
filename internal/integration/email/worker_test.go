package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/integration/email/templates"
)

// fakeEmailQueue is an in-memory adapter.EmailQueueRepository for worker tests.
type fakeEmailQueue struct {
	jobs []*entity.EmailJob
}

func (f *fakeEmailQueue) Create(_ context.Context, job *entity.EmailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeEmailQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	pending := make([]*entity.EmailJob, 0, limit)
	for _, job := range f.jobs {
		if job.Status == entity.EmailStatusPending && len(pending) < limit {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

func (f *fakeEmailQueue) Update(_ context.Context, job *entity.EmailJob) error {
	for i, existing := range f.jobs {
		if existing.ID == job.ID {
			f.jobs[i] = job
			return nil
		}
	}
	return errors.New("job not found")
}

func (f *fakeEmailQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, job := range f.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, errors.New("job not found")
}

func (f *fakeEmailQueue) ExistsForRecipientAndDay(_ context.Context, email string, templateType entity.EmailTemplateType, dayKey string) (bool, error) {
	return false, nil
}

func (f *fakeEmailQueue) DeleteOldSentJobs(_ context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	return NewWorker(queue, sender, renderer, WorkerConfig{
		PollInterval: time.Minute,
		BatchSize:    10,
	})
}

func newReminderJob() *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplateOccurrenceReminder,
		"ana@example.com",
		"Ana",
		"Upcoming recurring entries",
		map[string]interface{}{
			"user_name": "Ana",
			"items": []interface{}{
				map[string]interface{}{
					"title":        "Rent",
					"account_name": "Home",
					"amount":       "R$ 1.500,00",
					"occurs_on":    "2026-09-05",
				},
			},
		},
	)
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends pending job and marks it sent", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusSent {
			t.Errorf("expected status %s, got %s", entity.EmailStatusSent, job.Status)
		}
		if job.ResendID == "" {
			t.Error("expected resend ID to be recorded")
		}
		if job.ProcessedAt == nil {
			t.Error("expected processed_at to be set")
		}

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}
		sent := sender.SentEmails[0]
		if sent.To != "ana@example.com" {
			t.Errorf("expected recipient ana@example.com, got %s", sent.To)
		}
		if !strings.Contains(sent.HTML, "Rent") {
			t.Error("expected rendered HTML to contain the occurrence title")
		}
		if !strings.Contains(sent.Text, "R$ 1.500,00") {
			t.Error("expected rendered text to contain the formatted amount")
		}
	})

	t.Run("temporary failure reschedules the job", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("resend timeout"), false)
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusPending {
			t.Errorf("expected status %s, got %s", entity.EmailStatusPending, job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if !job.ScheduledAt.After(time.Now().UTC()) {
			t.Error("expected retry to be scheduled in the future")
		}
		if job.LastError == "" {
			t.Error("expected last error to be recorded")
		}
	})

	t.Run("permanent failure does not retry", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("invalid recipient"), true)
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %s, got %s", entity.EmailStatusFailed, job.Status)
		}
		if job.ProcessedAt == nil {
			t.Error("expected processed_at to be set on permanent failure")
		}

		worker.ProcessNow(ctx)
		if job.Attempts != 1 {
			t.Errorf("expected failed job to stay at 1 attempt, got %d", job.Attempts)
		}
	})

	t.Run("exhausted retries mark the job failed", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("resend timeout"), false)
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		job.Attempts = job.MaxAttempts - 1
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %s, got %s", entity.EmailStatusFailed, job.Status)
		}
		if job.Attempts != job.MaxAttempts {
			t.Errorf("expected %d attempts, got %d", job.MaxAttempts, job.Attempts)
		}
	})

	t.Run("unknown template type fails permanently", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		job.TemplateType = entity.EmailTemplateType("nonexistent_template")
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %s, got %s", entity.EmailStatusFailed, job.Status)
		}
		if len(sender.SentEmails) != 0 {
			t.Errorf("expected no emails sent, got %d", len(sender.SentEmails))
		}
	})

	t.Run("sent jobs are not reprocessed", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		sender := NewMockEmailSender()
		worker := newTestWorker(t, queue, sender)

		job := newReminderJob()
		if err := queue.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}

		worker.ProcessNow(ctx)
		worker.ProcessNow(ctx)

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email after two passes, got %d", len(sender.SentEmails))
		}
	})
}
