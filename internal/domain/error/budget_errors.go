package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the
	// category and month.
	ErrBudgetAlreadyExists = errors.New("a budget already exists for this category and month")

	// ErrInvalidBudgetLimit is returned when the budget limit is not positive.
	ErrInvalidBudgetLimit = errors.New("limit must be greater than zero")

	// ErrBudgetCategoryNotFound is returned when the budget's category is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")
)

// BudgetErrorCode defines error codes for budget errors.
type BudgetErrorCode string

const (
	ErrCodeBudgetNotFound         BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetAlreadyExists    BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetLimit     BudgetErrorCode = "BUD-010003"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BUD-010004"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BUD-010005"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
