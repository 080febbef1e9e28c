package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found in the system.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceNotDraft is returned when issuing an invoice that is not a draft.
	ErrInvoiceNotDraft = errors.New("invoice is not a draft")

	// ErrInvoiceNotIssued is returned when canceling or settling an invoice
	// that is not issued.
	ErrInvoiceNotIssued = errors.New("invoice is not issued")

	// ErrInvalidInvoiceAmount is returned when the invoice amount is not positive.
	ErrInvalidInvoiceAmount = errors.New("amount must be greater than zero")

	// ErrSameAccountInvoice is returned when the issuer and payer account match.
	ErrSameAccountInvoice = errors.New("issuer and payer accounts must differ")
)

// InvoiceErrorCode defines error codes for invoice errors.
type InvoiceErrorCode string

const (
	ErrCodeInvoiceNotFound      InvoiceErrorCode = "INV-010001"
	ErrCodeInvalidInvoiceAmount InvoiceErrorCode = "INV-010002"
	ErrCodeSameAccountInvoice   InvoiceErrorCode = "INV-010003"
	ErrCodeMissingInvoiceFields InvoiceErrorCode = "INV-010004"
	ErrCodeInvoiceNotOwned      InvoiceErrorCode = "INV-010005"
	ErrCodeInvoiceNotDraft      InvoiceErrorCode = "INV-020001"
	ErrCodeInvoiceNotIssued     InvoiceErrorCode = "INV-020002"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
