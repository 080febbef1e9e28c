package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/suggestion"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// SuggestionController handles AI category suggestion requests.
type SuggestionController struct {
	suggestUseCase *suggestion.SuggestCategoryUseCase
}

// NewSuggestionController creates a new suggestion controller instance.
func NewSuggestionController(suggestUseCase *suggestion.SuggestCategoryUseCase) *SuggestionController {
	return &SuggestionController{suggestUseCase: suggestUseCase}
}

// Suggest handles POST /suggestions/category requests.
func (c *SuggestionController) Suggest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	input := suggestion.SuggestCategoryInput{
		UserID:      userID,
		AccountID:   accountID,
		Description: req.Description,
		Kind:        entity.EntryKind(req.Kind),
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSuggestionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoryResponse(output))
}

// handleSuggestionError handles suggestion errors and returns appropriate HTTP responses.
func (c *SuggestionController) handleSuggestionError(ctx *gin.Context, err error) {
	var accErr *domainerror.AccountError
	if errors.As(err, &accErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: accErr.Message,
			Code:  string(accErr.Code),
		})
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	var entErr *domainerror.EntryError
	if errors.As(err, &entErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: entErr.Message,
			Code:  string(entErr.Code),
		})
		return
	}

	// Model failures land here. The request was fine, the upstream was not.
	ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
		Error: "Category suggestion is unavailable right now",
	})
}
