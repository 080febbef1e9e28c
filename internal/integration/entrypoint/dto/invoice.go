package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/application/usecase/invoice"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateInvoiceRequest represents the request body for draft invoice creation.
// Amount is in the minor currency unit.
type CreateInvoiceRequest struct {
	IssuerAccountID  string   `json:"issuer_account_id" binding:"required"`
	PayerAccountID   string   `json:"payer_account_id" binding:"required"`
	IssuerCategoryID string   `json:"issuer_category_id" binding:"required"`
	PayerCategoryID  string   `json:"payer_category_id" binding:"required"`
	Title            string   `json:"title" binding:"required,min=1,max=255"`
	Amount           int64    `json:"amount" binding:"required,gt=0"`
	BilledEntryIDs   []string `json:"billed_entry_ids,omitempty"`
}

// InvoiceResponse represents a single invoice in API responses.
type InvoiceResponse struct {
	ID                   string     `json:"id"`
	IssuerAccountID      string     `json:"issuer_account_id"`
	PayerAccountID       string     `json:"payer_account_id"`
	IssuerCategoryID     string     `json:"issuer_category_id"`
	PayerCategoryID      string     `json:"payer_category_id"`
	Title                string     `json:"title"`
	Amount               int64      `json:"amount"`
	Status               string     `json:"status"`
	BilledEntryIDs       []string   `json:"billed_entry_ids,omitempty"`
	IssuedAt             *time.Time `json:"issued_at,omitempty"`
	LinkedExpenseEntryID *string    `json:"linked_expense_entry_id,omitempty"`
	LinkedIncomeEntryID  *string    `json:"linked_income_entry_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// IssueInvoiceResponse represents the response for issuing an invoice.
type IssueInvoiceResponse struct {
	Invoice      InvoiceResponse `json:"invoice"`
	ExpenseEntry EntryResponse   `json:"expense_entry"`
	IncomeEntry  EntryResponse   `json:"income_entry"`
}

// ToInvoiceResponse converts a domain Invoice entity to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	response := InvoiceResponse{
		ID:               inv.ID.String(),
		IssuerAccountID:  inv.IssuerAccountID.String(),
		PayerAccountID:   inv.PayerAccountID.String(),
		IssuerCategoryID: inv.IssuerCategoryID.String(),
		PayerCategoryID:  inv.PayerCategoryID.String(),
		Title:            inv.Title,
		Amount:           inv.Amount,
		Status:           string(inv.Status),
		IssuedAt:         inv.IssuedAt,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}

	if len(inv.BilledEntryIDs) > 0 {
		response.BilledEntryIDs = make([]string, len(inv.BilledEntryIDs))
		for i, id := range inv.BilledEntryIDs {
			response.BilledEntryIDs[i] = id.String()
		}
	}

	if inv.LinkedExpenseEntryID != nil {
		id := inv.LinkedExpenseEntryID.String()
		response.LinkedExpenseEntryID = &id
	}
	if inv.LinkedIncomeEntryID != nil {
		id := inv.LinkedIncomeEntryID.String()
		response.LinkedIncomeEntryID = &id
	}

	return response
}

// ToInvoiceListResponse converts invoices to an InvoiceListResponse.
func ToInvoiceListResponse(invoices []*entity.Invoice) InvoiceListResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(inv)
	}
	return InvoiceListResponse{Invoices: responses}
}

// ToIssueInvoiceResponse converts an IssueInvoiceOutput to its response DTO.
func ToIssueInvoiceResponse(output *invoice.IssueInvoiceOutput) IssueInvoiceResponse {
	return IssueInvoiceResponse{
		Invoice:      ToInvoiceResponse(output.Invoice),
		ExpenseEntry: ToEntryResponse(output.ExpenseEntry),
		IncomeEntry:  ToEntryResponse(output.IncomeEntry),
	}
}
