package error

import "errors"

// Recurring template and occurrence domain errors.
var (
	// ErrTemplateNotFound is returned when a recurring template is not found.
	ErrTemplateNotFound = errors.New("recurring template not found")

	// ErrOccurrenceNotFound is returned when an occurrence is not found.
	ErrOccurrenceNotFound = errors.New("occurrence not found")

	// ErrInvalidTemplateAmount is returned when the template amount is not positive.
	ErrInvalidTemplateAmount = errors.New("amount must be greater than zero")

	// ErrInvalidDayOfMonth is returned when the day of month is outside 1-31,
	// or outside 1-28 without end-of-month clamping.
	ErrInvalidDayOfMonth = errors.New("invalid day of month")

	// ErrInvalidEffectiveRange is returned when the effective end month precedes
	// the effective start month.
	ErrInvalidEffectiveRange = errors.New("effective end must not precede effective start")

	// ErrInvalidTemplateKind is returned when the template kind is not expense or income.
	ErrInvalidTemplateKind = errors.New("invalid template kind")

	// ErrTemplateCategoryNotFound is returned when the template's category does not exist.
	ErrTemplateCategoryNotFound = errors.New("category not found")

	// ErrCategoryNotInAccount is returned when the category belongs to a different account.
	ErrCategoryNotInAccount = errors.New("category does not belong to account")

	// ErrOccurrenceNotScheduled is returned when applying an occurrence that is
	// not in the scheduled state.
	ErrOccurrenceNotScheduled = errors.New("occurrence is not scheduled")

	// ErrOccurrenceNotApplied is returned when canceling an occurrence that is
	// not in the applied state.
	ErrOccurrenceNotApplied = errors.New("occurrence is not applied")

	// ErrOccurrenceStateChanged is returned when a conditional state transition
	// found the occurrence already moved by a concurrent operation.
	ErrOccurrenceStateChanged = errors.New("occurrence state changed concurrently")

	// ErrDuplicatePeriod is returned when an occurrence insert collides with an
	// existing (template, period) pair.
	ErrDuplicatePeriod = errors.New("occurrence already exists for period")
)

// RecurringErrorCode defines error codes for recurring scheduling errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTemplateAmount RecurringErrorCode = "REC-010001"
	ErrCodeInvalidDayOfMonth     RecurringErrorCode = "REC-010002"
	ErrCodeInvalidEffectiveRange RecurringErrorCode = "REC-010003"
	ErrCodeInvalidTemplateKind   RecurringErrorCode = "REC-010004"
	ErrCodeMissingTemplateFields RecurringErrorCode = "REC-010005"

	// Ownership/lookup errors (02XXXX)
	ErrCodeTemplateNotFound         RecurringErrorCode = "REC-020001"
	ErrCodeOccurrenceNotFound       RecurringErrorCode = "REC-020002"
	ErrCodeTemplateCategoryNotFound RecurringErrorCode = "REC-020003"
	ErrCodeCategoryNotInAccount     RecurringErrorCode = "REC-020004"
	ErrCodeNotTemplateOwner         RecurringErrorCode = "REC-020005"

	// State machine errors (03XXXX)
	ErrCodeOccurrenceNotScheduled RecurringErrorCode = "REC-030001"
	ErrCodeOccurrenceNotApplied   RecurringErrorCode = "REC-030002"
	ErrCodeOccurrenceStateChanged RecurringErrorCode = "REC-030003"
	ErrCodeDuplicatePeriod        RecurringErrorCode = "REC-030004"
)

// RecurringError represents a recurring scheduling error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
