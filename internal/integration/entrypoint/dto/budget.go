package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
// Month is in YYYY-MM format; LimitAmount is in the minor currency unit.
type CreateBudgetRequest struct {
	CategoryID  string `json:"category_id" binding:"required"`
	Month       string `json:"month" binding:"required"`
	LimitAmount int64  `json:"limit_amount" binding:"required,gt=0"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	CategoryID  string    `json:"category_id"`
	Month       string    `json:"month"`
	LimitAmount int64     `json:"limit_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BudgetProgressResponse represents spending progress against one budget.
// Monetary values are decimal strings in the major currency unit.
type BudgetProgressResponse struct {
	Budget      BudgetResponse   `json:"budget"`
	Category    CategoryResponse `json:"category"`
	SpentAmount string           `json:"spent_amount"`
	LimitAmount string           `json:"limit_amount"`
	UsedPercent string           `json:"used_percent"`
}

// BudgetProgressListResponse represents the response for budget progress.
type BudgetProgressListResponse struct {
	Budgets []BudgetProgressResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:          budget.ID.String(),
		AccountID:   budget.AccountID.String(),
		CategoryID:  budget.CategoryID.String(),
		Month:       budget.Month.Format("2006-01"),
		LimitAmount: budget.LimitAmount,
		CreatedAt:   budget.CreatedAt,
		UpdatedAt:   budget.UpdatedAt,
	}
}

// ToBudgetProgressListResponse converts budget progress records to their response DTO.
func ToBudgetProgressListResponse(progress []*entity.BudgetProgress) BudgetProgressListResponse {
	responses := make([]BudgetProgressResponse, len(progress))
	for i, p := range progress {
		responses[i] = BudgetProgressResponse{
			Budget:      ToBudgetResponse(p.Budget),
			Category:    ToCategoryResponse(p.Category),
			SpentAmount: p.SpentAmount.StringFixed(2),
			LimitAmount: p.LimitAmount.StringFixed(2),
			UsedPercent: p.UsedPercent.StringFixed(2),
		}
	}
	return BudgetProgressListResponse{Budgets: responses}
}
