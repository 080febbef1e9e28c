package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/recurring"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring template and occurrence endpoints.
type RecurringController struct {
	createUseCase    *recurring.CreateTemplateUseCase
	updateUseCase    *recurring.UpdateTemplateUseCase
	listUseCase      *recurring.ListTemplatesUseCase
	deleteUseCase    *recurring.DeleteTemplateUseCase
	reconcileUseCase *recurring.ReconcileTemplateUseCase
	listOccUseCase   *recurring.ListOccurrencesUseCase
	applyUseCase     *recurring.ApplyOccurrenceUseCase
	cancelUseCase    *recurring.CancelOccurrenceUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateTemplateUseCase,
	updateUseCase *recurring.UpdateTemplateUseCase,
	listUseCase *recurring.ListTemplatesUseCase,
	deleteUseCase *recurring.DeleteTemplateUseCase,
	reconcileUseCase *recurring.ReconcileTemplateUseCase,
	listOccUseCase *recurring.ListOccurrencesUseCase,
	applyUseCase *recurring.ApplyOccurrenceUseCase,
	cancelUseCase *recurring.CancelOccurrenceUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:    createUseCase,
		updateUseCase:    updateUseCase,
		listUseCase:      listUseCase,
		deleteUseCase:    deleteUseCase,
		reconcileUseCase: reconcileUseCase,
		listOccUseCase:   listOccUseCase,
		applyUseCase:     applyUseCase,
		cancelUseCase:    cancelUseCase,
	}
}

// parseMonth parses a YYYY-MM month string into the first day of that month.
func parseMonth(value string) (time.Time, error) {
	return time.Parse("2006-01", value)
}

// Create handles POST /accounts/:accountId/recurring-templates requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, err := uuid.Parse(ctx.Param("accountId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	var req dto.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTemplateFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	effectiveFrom, err := parseMonth(req.EffectiveFrom)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid effective_from format. Use YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidEffectiveRange),
		})
		return
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		to, err := parseMonth(*req.EffectiveTo)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid effective_to format. Use YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidEffectiveRange),
			})
			return
		}
		effectiveTo = &to
	}

	input := recurring.CreateTemplateInput{
		UserID:        userID,
		AccountID:     accountID,
		CategoryID:    categoryID,
		Title:         req.Title,
		Kind:          entity.EntryKind(req.Kind),
		Amount:        req.Amount,
		DayOfMonth:    req.DayOfMonth,
		UseEndOfMonth: req.UseEndOfMonth,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TemplateWithOccurrencesResponse{
		Template:    dto.ToTemplateResponse(output.Template),
		Occurrences: dto.ToOccurrenceListResponse(output.Occurrences),
	})
}

// Update handles PUT /recurring-templates/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID format",
		})
		return
	}

	var req dto.UpdateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTemplateFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	effectiveFrom, err := parseMonth(req.EffectiveFrom)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid effective_from format. Use YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidEffectiveRange),
		})
		return
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		to, err := parseMonth(*req.EffectiveTo)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid effective_to format. Use YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidEffectiveRange),
			})
			return
		}
		effectiveTo = &to
	}

	input := recurring.UpdateTemplateInput{
		UserID:        userID,
		TemplateID:    templateID,
		CategoryID:    categoryID,
		Title:         req.Title,
		Kind:          entity.EntryKind(req.Kind),
		Amount:        req.Amount,
		DayOfMonth:    req.DayOfMonth,
		UseEndOfMonth: req.UseEndOfMonth,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpdateTemplateResponse(output))
}

// List handles GET /accounts/:accountId/recurring-templates requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, err := uuid.Parse(ctx.Param("accountId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	input := recurring.ListTemplatesInput{
		UserID:    userID,
		AccountID: accountID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTemplateListResponse(output.Templates))
}

// Delete handles DELETE /recurring-templates/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID format",
		})
		return
	}

	input := recurring.DeleteTemplateInput{
		UserID:     userID,
		TemplateID: templateID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Reconcile handles POST /recurring-templates/:id/reconcile requests.
// It re-synchronizes a template's occurrence window against the current time,
// the trigger external schedulers call for open-ended templates.
func (c *RecurringController) Reconcile(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID format",
		})
		return
	}

	input := recurring.ReconcileTemplateInput{
		UserID:     userID,
		TemplateID: templateID,
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncSummaryResponse{
		Created:  output.Created,
		Deleted:  output.Deleted,
		Canceled: output.Canceled,
	})
}

// ListOccurrences handles GET /recurring-templates/:id/occurrences requests.
func (c *RecurringController) ListOccurrences(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid template ID format",
		})
		return
	}

	input := recurring.ListOccurrencesInput{
		UserID:     userID,
		TemplateID: templateID,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.OccurrenceStatus(statusStr)
		switch status {
		case entity.OccurrenceStatusScheduled, entity.OccurrenceStatusApplied, entity.OccurrenceStatusCanceled:
			input.Status = &status
		default:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status filter. Use scheduled, applied, or canceled",
			})
			return
		}
	}

	output, err := c.listOccUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TemplateWithOccurrencesResponse{
		Template:    dto.ToTemplateResponse(output.Template),
		Occurrences: dto.ToOccurrenceListResponse(output.Occurrences),
	})
}

// Apply handles POST /occurrences/:id/apply requests.
func (c *RecurringController) Apply(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	occurrenceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid occurrence ID format",
		})
		return
	}

	input := recurring.ApplyOccurrenceInput{
		UserID:       userID,
		OccurrenceID: occurrenceID,
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ApplyOccurrenceResponse{
		Occurrence: dto.ToOccurrenceResponse(output.Occurrence),
		Entry:      dto.ToEntryResponse(output.Entry),
	})
}

// Cancel handles POST /occurrences/:id/cancel requests.
func (c *RecurringController) Cancel(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	occurrenceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid occurrence ID format",
		})
		return
	}

	input := recurring.CancelOccurrenceInput{
		UserID:       userID,
		OccurrenceID: occurrenceID,
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CancelOccurrenceResponse{
		Occurrence: dto.ToOccurrenceResponse(output.Occurrence),
	})
}

// handleRecurringError handles recurring errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecurringError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	// Bare state errors surface from the conditional repository updates.
	if errors.Is(err, domainerror.ErrOccurrenceStateChanged) || errors.Is(err, domainerror.ErrDuplicatePeriod) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeOccurrenceStateChanged),
		})
		return
	}

	var accErr *domainerror.AccountError
	if errors.As(err, &accErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: accErr.Message,
			Code:  string(accErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeTemplateNotFound,
		domainerror.ErrCodeOccurrenceNotFound,
		domainerror.ErrCodeTemplateCategoryNotFound,
		domainerror.ErrCodeNotTemplateOwner:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNotInAccount:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTemplateAmount,
		domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeInvalidEffectiveRange,
		domainerror.ErrCodeInvalidTemplateKind,
		domainerror.ErrCodeMissingTemplateFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeOccurrenceNotScheduled,
		domainerror.ErrCodeOccurrenceNotApplied:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeOccurrenceStateChanged,
		domainerror.ErrCodeDuplicatePeriod:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
