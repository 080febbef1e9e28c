package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/application/usecase/recurring"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateTemplateRequest represents the request body for recurring template
// creation. Amount is in the minor currency unit; EffectiveFrom and
// EffectiveTo are months in YYYY-MM format, EffectiveTo omitted for
// open-ended templates.
type CreateTemplateRequest struct {
	CategoryID    string  `json:"category_id" binding:"required"`
	Title         string  `json:"title" binding:"required,min=1,max=255"`
	Kind          string  `json:"kind" binding:"required,oneof=expense income"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	DayOfMonth    int     `json:"day_of_month" binding:"required,min=1,max=31"`
	UseEndOfMonth bool    `json:"use_end_of_month"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

// UpdateTemplateRequest represents the request body for recurring template
// update. All rule fields are required; the update replaces the rule as a
// whole and reconciles occurrences against it.
type UpdateTemplateRequest struct {
	CategoryID    string  `json:"category_id" binding:"required"`
	Title         string  `json:"title" binding:"required,min=1,max=255"`
	Kind          string  `json:"kind" binding:"required,oneof=expense income"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	DayOfMonth    int     `json:"day_of_month" binding:"required,min=1,max=31"`
	UseEndOfMonth bool    `json:"use_end_of_month"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

// TemplateResponse represents a recurring template in API responses.
type TemplateResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Kind          string    `json:"kind"`
	Amount        int64     `json:"amount"`
	DayOfMonth    int       `json:"day_of_month"`
	UseEndOfMonth bool      `json:"use_end_of_month"`
	EffectiveFrom string    `json:"effective_from"`
	EffectiveTo   *string   `json:"effective_to,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OccurrenceResponse represents an occurrence in API responses.
type OccurrenceResponse struct {
	ID              string     `json:"id"`
	TemplateID      string     `json:"template_id"`
	PeriodMonth     string     `json:"period_month"`
	OccursOn        string     `json:"occurs_on"`
	Status          string     `json:"status"`
	AppliedAt       *time.Time `json:"applied_at,omitempty"`
	LinkedEntryID   *string    `json:"linked_entry_id,omitempty"`
	LinkedEntryKind *string    `json:"linked_entry_kind,omitempty"`
}

// TemplateWithOccurrencesResponse represents a template together with its
// generated occurrences.
type TemplateWithOccurrencesResponse struct {
	Template    TemplateResponse     `json:"template"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// TemplateListResponse represents the response for listing templates.
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// SyncSummaryResponse reports the occurrence writes a template save or
// reconcile performed.
type SyncSummaryResponse struct {
	Created  int `json:"created"`
	Deleted  int `json:"deleted"`
	Canceled int `json:"canceled"`
}

// UpdateTemplateResponse represents the response for template update.
type UpdateTemplateResponse struct {
	Template TemplateResponse    `json:"template"`
	Sync     SyncSummaryResponse `json:"sync"`
}

// ApplyOccurrenceResponse represents the response for applying an occurrence.
type ApplyOccurrenceResponse struct {
	Occurrence OccurrenceResponse `json:"occurrence"`
	Entry      EntryResponse      `json:"entry"`
}

// CancelOccurrenceResponse represents the response for canceling an occurrence.
type CancelOccurrenceResponse struct {
	Occurrence OccurrenceResponse `json:"occurrence"`
}

// ToTemplateResponse converts a domain RecurringTemplate to a TemplateResponse DTO.
func ToTemplateResponse(t *entity.RecurringTemplate) TemplateResponse {
	response := TemplateResponse{
		ID:            t.ID.String(),
		AccountID:     t.AccountID.String(),
		CategoryID:    t.CategoryID.String(),
		Title:         t.Title,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		DayOfMonth:    t.DayOfMonth,
		UseEndOfMonth: t.UseEndOfMonth,
		EffectiveFrom: t.EffectiveFrom.Format("2006-01"),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}

	if t.EffectiveTo != nil {
		to := t.EffectiveTo.Format("2006-01")
		response.EffectiveTo = &to
	}

	return response
}

// ToOccurrenceResponse converts a domain Occurrence to an OccurrenceResponse DTO.
func ToOccurrenceResponse(o *entity.Occurrence) OccurrenceResponse {
	response := OccurrenceResponse{
		ID:          o.ID.String(),
		TemplateID:  o.TemplateID.String(),
		PeriodMonth: o.PeriodMonth.Format("2006-01"),
		OccursOn:    o.OccursOn.Format("2006-01-02"),
		Status:      string(o.Status),
		AppliedAt:   o.AppliedAt,
	}

	if o.LinkedEntry != nil {
		entryID := o.LinkedEntry.EntryID.String()
		entryKind := string(o.LinkedEntry.Kind)
		response.LinkedEntryID = &entryID
		response.LinkedEntryKind = &entryKind
	}

	return response
}

// ToOccurrenceListResponse converts occurrences to response DTOs.
func ToOccurrenceListResponse(occurrences []*entity.Occurrence) []OccurrenceResponse {
	responses := make([]OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		responses[i] = ToOccurrenceResponse(o)
	}
	return responses
}

// ToTemplateListResponse converts templates to a TemplateListResponse.
func ToTemplateListResponse(templates []*entity.RecurringTemplate) TemplateListResponse {
	responses := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		responses[i] = ToTemplateResponse(t)
	}
	return TemplateListResponse{Templates: responses}
}

// ToUpdateTemplateResponse converts an UpdateTemplateOutput to its response DTO.
func ToUpdateTemplateResponse(output *recurring.UpdateTemplateOutput) UpdateTemplateResponse {
	return UpdateTemplateResponse{
		Template: ToTemplateResponse(output.Template),
		Sync: SyncSummaryResponse{
			Created:  output.Created,
			Deleted:  output.Deleted,
			Canceled: output.Canceled,
		},
	}
}
