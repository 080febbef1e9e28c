package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/application/usecase/entry"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateEntryRequest represents the request body for ledger entry creation.
// Amount is in the minor currency unit (cents).
type CreateEntryRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Kind       string `json:"kind" binding:"required,oneof=expense income"`
	Date       string `json:"date" binding:"required"`
}

// EntryCategoryResponse represents category information in entry responses.
type EntryCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

// EntryResponse represents a single ledger entry in API responses.
type EntryResponse struct {
	ID         string                 `json:"id"`
	AccountID  string                 `json:"account_id"`
	CategoryID string                 `json:"category_id"`
	Category   *EntryCategoryResponse `json:"category,omitempty"`
	Title      string                 `json:"title"`
	Amount     int64                  `json:"amount"`
	Kind       string                 `json:"kind"`
	Date       string                 `json:"date"`
	Source     string                 `json:"source"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// EntryPaginationResponse represents pagination information in API responses.
type EntryPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// EntryListResponse represents the response for listing ledger entries.
type EntryListResponse struct {
	Entries    []EntryResponse         `json:"entries"`
	Pagination EntryPaginationResponse `json:"pagination"`
}

// ToEntryResponse converts a domain LedgerEntry entity to an EntryResponse DTO.
func ToEntryResponse(e *entity.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID.String(),
		AccountID:  e.AccountID.String(),
		CategoryID: e.CategoryID.String(),
		Title:      e.Title,
		Amount:     e.Amount,
		Kind:       string(e.Kind),
		Date:       e.Date.Format("2006-01-02"),
		Source:     string(e.Source),
		CreatedBy:  e.CreatedBy.String(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEntryListResponse converts a ListEntriesOutput to an EntryListResponse.
func ToEntryListResponse(output *entry.ListEntriesOutput) EntryListResponse {
	entries := make([]EntryResponse, len(output.Entries))
	for i, item := range output.Entries {
		response := ToEntryResponse(item.Entry)
		if item.Category != nil {
			response.Category = &EntryCategoryResponse{
				ID:    item.Category.ID.String(),
				Name:  item.Category.Name,
				Kind:  string(item.Category.Kind),
				Color: item.Category.Color,
			}
		}
		entries[i] = response
	}

	return EntryListResponse{
		Entries: entries,
		Pagination: EntryPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}
