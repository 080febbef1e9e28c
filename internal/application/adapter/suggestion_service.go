package adapter

import (
	"context"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CategoryCandidate is one existing category offered to the suggestion model.
type CategoryCandidate struct {
	Name string
	Kind entity.CategoryKind
}

// CategorySuggestion is the model's pick for an entry description.
type CategorySuggestion struct {
	CategoryName string
	Confidence   float64
	Reasoning    string
}

// SuggestionService defines the interface for AI-backed category suggestions.
type SuggestionService interface {
	// SuggestCategory picks the best-fitting category for the entry
	// description from the provided candidates.
	SuggestCategory(ctx context.Context, description string, kind entity.EntryKind, candidates []CategoryCandidate) (*CategorySuggestion, error)
}
