package error

import "errors"

// Ledger entry domain errors.
var (
	// ErrEntryNotFound is returned when a ledger entry is not found in the system.
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrInvalidEntryKind is returned when the entry kind is invalid.
	ErrInvalidEntryKind = errors.New("invalid entry kind")

	// ErrInvalidEntryAmount is returned when the entry amount is not positive.
	ErrInvalidEntryAmount = errors.New("amount must be greater than zero")

	// ErrEntryCategoryNotFound is returned when the specified category is not found.
	ErrEntryCategoryNotFound = errors.New("category not found")

	// ErrEntryTitleTooLong is returned when the entry title exceeds the maximum length.
	ErrEntryTitleTooLong = errors.New("title too long")

	// ErrEntryLinked is returned when deleting an entry that is owned by a
	// recurring occurrence or an issued invoice. Linked entries are destroyed
	// only through their owner's cancel path.
	ErrEntryLinked = errors.New("entry is linked to a recurring occurrence or invoice")
)

// EntryErrorCode defines error codes for ledger entry errors.
type EntryErrorCode string

const (
	ErrCodeEntryNotFound         EntryErrorCode = "ENT-010001"
	ErrCodeInvalidEntryKind      EntryErrorCode = "ENT-010002"
	ErrCodeInvalidEntryAmount    EntryErrorCode = "ENT-010003"
	ErrCodeEntryCategoryNotFound EntryErrorCode = "ENT-010004"
	ErrCodeEntryTitleTooLong     EntryErrorCode = "ENT-010005"
	ErrCodeMissingEntryFields    EntryErrorCode = "ENT-010006"
	ErrCodeEntryLinked           EntryErrorCode = "ENT-020001"
	ErrCodeEntryNotOwned         EntryErrorCode = "ENT-020002"
)

// EntryError represents a ledger entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
