package dto

import (
	"github.com/household-ledger/backend/internal/application/usecase/suggestion"
)

// SuggestCategoryRequest represents the request body for category suggestion.
type SuggestCategoryRequest struct {
	AccountID   string `json:"account_id" binding:"required"`
	Description string `json:"description" binding:"required,min=1,max=255"`
	Kind        string `json:"kind" binding:"required,oneof=expense income"`
}

// SuggestCategoryResponse represents the response for a category suggestion.
type SuggestCategoryResponse struct {
	Category   CategoryResponse `json:"category"`
	Confidence float64          `json:"confidence"`
	Reasoning  string           `json:"reasoning"`
}

// ToSuggestCategoryResponse converts a SuggestCategoryOutput to its response DTO.
func ToSuggestCategoryResponse(output *suggestion.SuggestCategoryOutput) SuggestCategoryResponse {
	return SuggestCategoryResponse{
		Category:   ToCategoryResponse(output.Category),
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	}
}
