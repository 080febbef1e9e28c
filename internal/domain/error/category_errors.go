package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryKind is returned when the category kind is invalid.
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	// ErrCategoryNameTaken is returned when the account already has a category with the name.
	ErrCategoryNameTaken = errors.New("a category with this name already exists")

	// ErrCategoryInUse is returned when deleting a category that still has
	// ledger entries or recurring templates attached.
	ErrCategoryInUse = errors.New("category is still in use")
)

// CategoryErrorCode defines error codes for category errors.
type CategoryErrorCode string

const (
	ErrCodeCategoryNotFound     CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidCategoryKind  CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNameTaken    CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryInUse        CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryField CategoryErrorCode = "CAT-010005"
	ErrCodeCategoryNotOwned     CategoryErrorCode = "CAT-010006"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
