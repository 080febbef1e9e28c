package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotAccountOwner is returned when the acting user does not own the account.
	ErrNotAccountOwner = errors.New("account does not belong to user")

	// ErrInvalidAccountKind is returned when the account kind is invalid.
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// ErrAccountNameTaken is returned when the user already has an account with the name.
	ErrAccountNameTaken = errors.New("an account with this name already exists")
)

// AccountErrorCode defines error codes for account errors.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound     AccountErrorCode = "ACC-010001"
	ErrCodeNotAccountOwner     AccountErrorCode = "ACC-010002"
	ErrCodeInvalidAccountKind  AccountErrorCode = "ACC-010003"
	ErrCodeAccountNameTaken    AccountErrorCode = "ACC-010004"
	ErrCodeMissingAccountField AccountErrorCode = "ACC-010005"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
