package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/invoice"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// InvoiceController handles cross-account invoice HTTP requests.
type InvoiceController struct {
	createUseCase   *invoice.CreateInvoiceUseCase
	listUseCase     *invoice.ListInvoicesUseCase
	issueUseCase    *invoice.IssueInvoiceUseCase
	cancelUseCase   *invoice.CancelInvoiceUseCase
	markPaidUseCase *invoice.MarkInvoicePaidUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	createUseCase *invoice.CreateInvoiceUseCase,
	listUseCase *invoice.ListInvoicesUseCase,
	issueUseCase *invoice.IssueInvoiceUseCase,
	cancelUseCase *invoice.CancelInvoiceUseCase,
	markPaidUseCase *invoice.MarkInvoicePaidUseCase,
) *InvoiceController {
	return &InvoiceController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		issueUseCase:    issueUseCase,
		cancelUseCase:   cancelUseCase,
		markPaidUseCase: markPaidUseCase,
	}
}

// Create handles POST /invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingInvoiceFields),
		})
		return
	}

	issuerAccountID, err := uuid.Parse(req.IssuerAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid issuer account ID format",
		})
		return
	}

	payerAccountID, err := uuid.Parse(req.PayerAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payer account ID format",
		})
		return
	}

	issuerCategoryID, err := uuid.Parse(req.IssuerCategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid issuer category ID format",
		})
		return
	}

	payerCategoryID, err := uuid.Parse(req.PayerCategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payer category ID format",
		})
		return
	}

	billedEntryIDs := make([]uuid.UUID, 0, len(req.BilledEntryIDs))
	for _, idStr := range req.BilledEntryIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid billed entry ID format",
			})
			return
		}
		billedEntryIDs = append(billedEntryIDs, id)
	}

	input := invoice.CreateInvoiceInput{
		UserID:           userID,
		IssuerAccountID:  issuerAccountID,
		PayerAccountID:   payerAccountID,
		IssuerCategoryID: issuerCategoryID,
		PayerCategoryID:  payerCategoryID,
		Title:            req.Title,
		Amount:           req.Amount,
		BilledEntryIDs:   billedEntryIDs,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// List handles GET /invoices requests. The account_id query parameter scopes
// the listing to invoices the account issued or has to pay.
func (c *InvoiceController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, err := uuid.Parse(ctx.Query("account_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing account_id query parameter",
		})
		return
	}

	input := invoice.ListInvoicesInput{
		UserID:    userID,
		AccountID: accountID,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output.Invoices))
}

// Issue handles POST /invoices/:id/issue requests.
func (c *InvoiceController) Issue(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	invoiceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID format",
		})
		return
	}

	input := invoice.IssueInvoiceInput{
		UserID:    userID,
		InvoiceID: invoiceID,
	}

	output, err := c.issueUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIssueInvoiceResponse(output))
}

// Cancel handles POST /invoices/:id/cancel requests.
func (c *InvoiceController) Cancel(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	invoiceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID format",
		})
		return
	}

	input := invoice.CancelInvoiceInput{
		UserID:    userID,
		InvoiceID: invoiceID,
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// MarkPaid handles POST /invoices/:id/pay requests.
func (c *InvoiceController) MarkPaid(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	invoiceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID format",
		})
		return
	}

	input := invoice.MarkInvoicePaidInput{
		UserID:    userID,
		InvoiceID: invoiceID,
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// handleInvoiceError handles invoice errors and returns appropriate HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if errors.As(err, &invErr) {
		statusCode := c.getStatusCodeForInvoiceError(invErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
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

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForInvoiceError maps invoice error codes to HTTP status codes.
func (c *InvoiceController) getStatusCodeForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound,
		domainerror.ErrCodeInvoiceNotOwned:
		return http.StatusNotFound
	case domainerror.ErrCodeInvoiceNotDraft,
		domainerror.ErrCodeInvoiceNotIssued:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidInvoiceAmount,
		domainerror.ErrCodeSameAccountInvoice,
		domainerror.ErrCodeMissingInvoiceFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
