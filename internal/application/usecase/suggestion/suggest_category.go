// Package suggestion contains AI-backed category suggestion use cases.
package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Description string
	Kind        entity.EntryKind
}

// SuggestCategoryOutput represents the output of a category suggestion.
type SuggestCategoryOutput struct {
	Category   *entity.Category
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase asks the suggestion model to pick an existing
// category for an entry description. Suggestions are advisory; nothing is
// persisted.
type SuggestCategoryUseCase struct {
	suggestionService adapter.SuggestionService
	categoryRepo      adapter.CategoryRepository
	accountRepo       adapter.AccountRepository
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(
	suggestionService adapter.SuggestionService,
	categoryRepo adapter.CategoryRepository,
	accountRepo adapter.AccountRepository,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		suggestionService: suggestionService,
		categoryRepo:      categoryRepo,
		accountRepo:       accountRepo,
	}
}

// Execute performs the suggestion. The model only ever picks from the
// account's own categories of the matching kind.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	owned, err := uc.accountRepo.IsOwnedBy(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	if input.Description == "" {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeMissingEntryFields,
			"description is required",
			nil,
		)
	}

	categories, err := uc.categoryRepo.FindByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	candidates := make([]adapter.CategoryCandidate, 0, len(categories))
	byName := make(map[string]*entity.Category, len(categories))
	for _, category := range categories {
		if entity.EntryKind(category.Kind) != input.Kind {
			continue
		}
		candidates = append(candidates, adapter.CategoryCandidate{
			Name: category.Name,
			Kind: category.Kind,
		})
		byName[category.Name] = category
	}

	if len(candidates) == 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"account has no categories of this kind",
			domainerror.ErrCategoryNotFound,
		)
	}

	result, err := uc.suggestionService.SuggestCategory(ctx, input.Description, input.Kind, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to get category suggestion: %w", err)
	}

	category, ok := byName[result.CategoryName]
	if !ok {
		// The model answered with a name outside the candidate set.
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"suggested category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	return &SuggestCategoryOutput{
		Category:   category,
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
	}, nil
}
