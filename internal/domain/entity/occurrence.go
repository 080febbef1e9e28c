package entity

import (
	"time"

	"github.com/google/uuid"
)

// OccurrenceStatus represents the lifecycle state of an occurrence.
//
//	scheduled --apply--> applied --cancel--> canceled
//	scheduled --(sync: out of range)--> deleted
//	applied   --(sync: out of range)--> canceled
//
// Canceled is terminal for its period; the unique (template, period) pair is
// never regenerated once a canceled record exists.
type OccurrenceStatus string

const (
	OccurrenceStatusScheduled OccurrenceStatus = "scheduled"
	OccurrenceStatusApplied   OccurrenceStatus = "applied"
	OccurrenceStatusCanceled  OccurrenceStatus = "canceled"
)

// LinkedEntryRef points at the ledger entry an applied occurrence created.
// Holding kind and id together keeps "exactly one entry or none" a property
// of the type instead of two parallel nullable columns.
type LinkedEntryRef struct {
	Kind    EntryKind
	EntryID uuid.UUID
}

// Occurrence is one monthly materialization of a recurring template.
// PeriodMonth is always the first day of the month the occurrence represents;
// OccursOn is the calendar day within that month the entry falls on.
type Occurrence struct {
	ID          uuid.UUID
	TemplateID  uuid.UUID
	PeriodMonth time.Time
	OccursOn    time.Time
	Status      OccurrenceStatus
	AppliedAt   *time.Time
	LinkedEntry *LinkedEntryRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOccurrence creates a scheduled Occurrence for the given period.
func NewOccurrence(templateID uuid.UUID, periodMonth, occursOn time.Time) *Occurrence {
	now := time.Now().UTC()
	return &Occurrence{
		ID:          uuid.New(),
		TemplateID:  templateID,
		PeriodMonth: periodMonth,
		OccursOn:    occursOn,
		Status:      OccurrenceStatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkApplied transitions the occurrence to applied, linking the created entry.
func (o *Occurrence) MarkApplied(ref LinkedEntryRef, appliedAt time.Time) {
	o.Status = OccurrenceStatusApplied
	o.AppliedAt = &appliedAt
	o.LinkedEntry = &ref
	o.UpdatedAt = appliedAt
}

// MarkCanceled transitions the occurrence to canceled, clearing the entry link.
// The period and occurs-on date are preserved as a historical record.
func (o *Occurrence) MarkCanceled(at time.Time) {
	o.Status = OccurrenceStatusCanceled
	o.AppliedAt = nil
	o.LinkedEntry = nil
	o.UpdatedAt = at
}

// OccurrenceWithTemplate represents an occurrence with its owning template.
type OccurrenceWithTemplate struct {
	Occurrence *Occurrence
	Template   *RecurringTemplate
}
