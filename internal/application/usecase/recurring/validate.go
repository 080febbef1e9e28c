package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// templateRule holds the validated, normalized recurrence rule fields shared
// by template creation and update.
type templateRule struct {
	Title         string
	Kind          entity.EntryKind
	Amount        int64
	DayOfMonth    int
	UseEndOfMonth bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

const maxTemplateTitleLength = 255

// validateRule checks the recurrence rule invariants and normalizes the
// effective range to month starts.
func validateRule(rule templateRule) (templateRule, error) {
	if rule.Title == "" || len(rule.Title) > maxTemplateTitleLength {
		return rule, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingTemplateFields,
			"title is required and must be at most 255 characters",
			nil,
		)
	}

	if rule.Kind != entity.EntryKindExpense && rule.Kind != entity.EntryKindIncome {
		return rule, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidTemplateKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidTemplateKind,
		)
	}

	if rule.Amount <= 0 {
		return rule, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidTemplateAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTemplateAmount,
		)
	}

	if rule.DayOfMonth < 1 || rule.DayOfMonth > 31 {
		return rule, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day of month must be between 1 and 31",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	// Days 29-31 do not exist in every month, so they require clamping.
	if !rule.UseEndOfMonth && rule.DayOfMonth > entity.MaxFixedDayOfMonth {
		return rule, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day of month above 28 requires end-of-month clamping",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	rule.EffectiveFrom = MonthStart(rule.EffectiveFrom)
	if rule.EffectiveTo != nil {
		to := MonthStart(*rule.EffectiveTo)
		rule.EffectiveTo = &to
		if to.Before(rule.EffectiveFrom) {
			return rule, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidEffectiveRange,
				"effective end must not precede effective start",
				domainerror.ErrInvalidEffectiveRange,
			)
		}
	}

	return rule, nil
}

// validateTemplateCategory checks that the category exists and belongs to the
// template's account.
func validateTemplateCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, accountID, categoryID uuid.UUID) error {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeTemplateCategoryNotFound,
			"category not found",
			domainerror.ErrTemplateCategoryNotFound,
		)
	}

	if category.AccountID != accountID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeCategoryNotInAccount,
			"category does not belong to account",
			domainerror.ErrCategoryNotInAccount,
		)
	}

	return nil
}

// requireTemplateOwnership checks that the template's account belongs to the
// acting user.
func requireTemplateOwnership(ctx context.Context, accountRepo adapter.AccountRepository, accountID, userID uuid.UUID) error {
	owned, err := accountRepo.IsOwnedBy(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNotTemplateOwner,
			"recurring template not found",
			domainerror.ErrTemplateNotFound,
		)
	}
	return nil
}
