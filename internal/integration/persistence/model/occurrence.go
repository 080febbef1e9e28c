package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// OccurrenceModel represents the occurrences table in the database. The
// unique (template_id, period_month) index is the backstop against two
// concurrent syncs materializing the same period twice.
type OccurrenceModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TemplateID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_occurrences_template_period"`
	PeriodMonth     time.Time  `gorm:"type:date;not null;uniqueIndex:idx_occurrences_template_period"`
	OccursOn        time.Time  `gorm:"type:date;not null;index"`
	Status          string     `gorm:"type:varchar(10);not null;index"`
	AppliedAt       *time.Time `gorm:"type:timestamp"`
	LinkedEntryID   *uuid.UUID `gorm:"type:uuid;index"`
	LinkedEntryKind *string    `gorm:"type:varchar(10)"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Template    *RecurringTemplateModel `gorm:"foreignKey:TemplateID;references:ID"`
	LinkedEntry *LedgerEntryModel       `gorm:"foreignKey:LinkedEntryID;references:ID"`
}

// TableName returns the table name for the OccurrenceModel.
func (OccurrenceModel) TableName() string {
	return "occurrences"
}

// ToEntity converts an OccurrenceModel to a domain Occurrence entity. The
// linked entry columns map onto the tagged reference: both set or both null.
func (m *OccurrenceModel) ToEntity() *entity.Occurrence {
	var linked *entity.LinkedEntryRef
	if m.LinkedEntryID != nil && m.LinkedEntryKind != nil {
		linked = &entity.LinkedEntryRef{
			Kind:    entity.EntryKind(*m.LinkedEntryKind),
			EntryID: *m.LinkedEntryID,
		}
	}

	return &entity.Occurrence{
		ID:          m.ID,
		TemplateID:  m.TemplateID,
		PeriodMonth: m.PeriodMonth,
		OccursOn:    m.OccursOn,
		Status:      entity.OccurrenceStatus(m.Status),
		AppliedAt:   m.AppliedAt,
		LinkedEntry: linked,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToEntityWithTemplate converts an OccurrenceModel with its Template to an
// OccurrenceWithTemplate entity.
func (m *OccurrenceModel) ToEntityWithTemplate() *entity.OccurrenceWithTemplate {
	result := &entity.OccurrenceWithTemplate{
		Occurrence: m.ToEntity(),
	}

	if m.Template != nil {
		result.Template = m.Template.ToEntity()
	}

	return result
}

// OccurrenceFromEntity creates an OccurrenceModel from a domain Occurrence entity.
func OccurrenceFromEntity(occurrence *entity.Occurrence) *OccurrenceModel {
	var linkedEntryID *uuid.UUID
	var linkedEntryKind *string
	if occurrence.LinkedEntry != nil {
		id := occurrence.LinkedEntry.EntryID
		kind := string(occurrence.LinkedEntry.Kind)
		linkedEntryID = &id
		linkedEntryKind = &kind
	}

	return &OccurrenceModel{
		ID:              occurrence.ID,
		TemplateID:      occurrence.TemplateID,
		PeriodMonth:     occurrence.PeriodMonth,
		OccursOn:        occurrence.OccursOn,
		Status:          string(occurrence.Status),
		AppliedAt:       occurrence.AppliedAt,
		LinkedEntryID:   linkedEntryID,
		LinkedEntryKind: linkedEntryKind,
		CreatedAt:       occurrence.CreatedAt,
		UpdatedAt:       occurrence.UpdatedAt,
	}
}
