package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

var minorUnitFactor = decimal.NewFromInt(100)

// BudgetProgressInput represents the input for budget progress calculation.
type BudgetProgressInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Month     time.Time
}

// BudgetProgressOutput represents the output of budget progress calculation.
type BudgetProgressOutput struct {
	Budgets []*entity.BudgetProgress
}

// BudgetProgressUseCase computes spending against each budget of a month.
type BudgetProgressUseCase struct {
	budgetRepo   adapter.BudgetRepository
	entryRepo    adapter.EntryRepository
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// NewBudgetProgressUseCase creates a new BudgetProgressUseCase instance.
func NewBudgetProgressUseCase(
	budgetRepo adapter.BudgetRepository,
	entryRepo adapter.EntryRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *BudgetProgressUseCase {
	return &BudgetProgressUseCase{
		budgetRepo:   budgetRepo,
		entryRepo:    entryRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute computes the month's budget progress. Spent amounts cover expense
// entries from every source, including applied recurring occurrences.
func (uc *BudgetProgressUseCase) Execute(ctx context.Context, input BudgetProgressInput) (*BudgetProgressOutput, error) {
	if err := requireAccountOwnership(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	month := time.Date(input.Month.Year(), input.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := month.AddDate(0, 1, 0).Add(-time.Nanosecond)

	budgets, err := uc.budgetRepo.FindByAccountAndMonth(ctx, input.AccountID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	progress := make([]*entity.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load budget category: %w", err)
		}

		spent, err := uc.entryRepo.SumByCategoryAndRange(ctx, budget.CategoryID, entity.EntryKindExpense, month, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to sum category spending: %w", err)
		}

		spentMajor := spent.Div(minorUnitFactor)
		limitMajor := decimal.NewFromInt(budget.LimitAmount).Div(minorUnitFactor)

		usedPercent := decimal.Zero
		if !limitMajor.IsZero() {
			usedPercent = spentMajor.Div(limitMajor).Mul(decimal.NewFromInt(100)).Round(2)
		}

		progress = append(progress, &entity.BudgetProgress{
			Budget:      budget,
			Category:    category,
			SpentAmount: spentMajor,
			LimitAmount: limitMajor,
			UsedPercent: usedPercent,
		})
	}

	return &BudgetProgressOutput{Budgets: progress}, nil
}
