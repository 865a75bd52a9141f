// Package errors provides the standardized error taxonomy of the loan assistant.
//
// Every failure the conversation engine can observe is either a re-promptable
// user error or an explicit business outcome; none of them are fatal. The
// Recoverable flag tells the engine whether the user may retry in place.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeAmountOutOfRange    ErrorCode = "AMOUNT_OUT_OF_RANGE"
	ErrCodeTenureOutOfRange    ErrorCode = "TENURE_OUT_OF_RANGE"
	ErrCodeInvalidOfferIndex   ErrorCode = "INVALID_OFFER_INDEX"
	ErrCodeUnrecognizedInput   ErrorCode = "UNRECOGNIZED_INPUT"
	ErrCodeOperationInFlight   ErrorCode = "OPERATION_IN_FLIGHT"
	ErrCodeConsentRequired     ErrorCode = "CONSENT_REQUIRED"
	ErrCodeEligibilityRejected ErrorCode = "ELIGIBILITY_REJECTED"
	ErrCodePreconditionFailed  ErrorCode = "PRECONDITION_FAILED"

	ErrCodeSimulationFault ErrorCode = "SIMULATION_FAULT"
	ErrCodeRecordNotFound  ErrorCode = "RECORD_NOT_FOUND"

	ErrCodeCatalogInvalid           ErrorCode = "CATALOG_INVALID"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeSessionClosed   ErrorCode = "SESSION_CLOSED"
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Recoverable bool                   `json:"recoverable"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error { return e.cause }

// Is matches another *StandardError by code, so sentinel-style comparisons
// like errors.Is(err, &StandardError{Code: ErrCodeConsentRequired}) work.
func (e *StandardError) Is(target error) bool {
	var t *StandardError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns a copy carrying an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	cp := *e
	cp.Metadata = make(map[string]interface{}, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		cp.Metadata[k] = v
	}
	cp.Metadata[key] = value
	return &cp
}

func newError(code ErrorCode, message, details string, recoverable bool, cause error) *StandardError {
	return &StandardError{
		Code:        code,
		Message:     message,
		Details:     details,
		Recoverable: recoverable,
		Timestamp:   time.Now().UTC(),
		cause:       cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a recoverable validation error.
func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, true, nil)
}

// NewAmountOutOfRangeError reports an amount outside the permitted band.
func NewAmountOutOfRangeError(amount, min, max int64) *StandardError {
	return newError(ErrCodeAmountOutOfRange, "Loan amount out of range",
		fmt.Sprintf("amount %d not in [%d, %d]", amount, min, max), true, nil)
}

// NewTenureOutOfRangeError reports a tenure outside the permitted band.
func NewTenureOutOfRangeError(months, min, max int) *StandardError {
	return newError(ErrCodeTenureOutOfRange, "Tenure out of range",
		fmt.Sprintf("tenure %d not in [%d, %d]", months, min, max), true, nil)
}

// NewInvalidOfferIndexError reports a 1-based selection outside the filtered list.
func NewInvalidOfferIndexError(position, available int) *StandardError {
	return newError(ErrCodeInvalidOfferIndex, "Invalid offer selection",
		fmt.Sprintf("position %d not in [1, %d]", position, available), true, nil)
}

// NewUnrecognizedInputError reports free text that maps to no intent of the step.
func NewUnrecognizedInputError(step, input string) *StandardError {
	return newError(ErrCodeUnrecognizedInput, "Input not recognized for this step",
		fmt.Sprintf("step: %s, input: %q", step, input), true, nil)
}

// NewOperationInFlightError rejects input while a simulated backend call is running.
func NewOperationInFlightError(taskType string) *StandardError {
	return newError(ErrCodeOperationInFlight, "Still working on the previous step",
		fmt.Sprintf("taskType: %s", taskType), true, nil)
}

// NewConsentRequiredError is raised when a credit pull is attempted without consent.
func NewConsentRequiredError(customerID string) *StandardError {
	return newError(ErrCodeConsentRequired, "Credit bureau consent required",
		fmt.Sprintf("customerId: %s", customerID), true, nil)
}

// NewEligibilityRejection records a terminal business decision.
func NewEligibilityRejection(reason string) *StandardError {
	return newError(ErrCodeEligibilityRejected, "Application not approved", reason, false, nil)
}

// NewPreconditionFailedError reports an agent invoked out of order.
func NewPreconditionFailedError(details string) *StandardError {
	return newError(ErrCodePreconditionFailed, "Operation precondition not met", details, false, nil)
}

// NewSimulationFault reports a simulated backend failure the user may retry.
func NewSimulationFault(taskType string, err error) *StandardError {
	details := fmt.Sprintf("taskType: %s", taskType)
	if err != nil {
		details = fmt.Sprintf("taskType: %s, error: %s", taskType, err.Error())
	}
	return newError(ErrCodeSimulationFault, "Backend agent failed", details, true, err)
}

// NewRecordNotFoundError reports a missing reference record.
func NewRecordNotFoundError(table, id string) *StandardError {
	return newError(ErrCodeRecordNotFound, fmt.Sprintf("Record not found in %s", table),
		fmt.Sprintf("id: %s", id), true, nil)
}

// NewCatalogInvalidError reports a reference table that failed schema validation.
func NewCatalogInvalidError(table string, problems []string) *StandardError {
	return newError(ErrCodeCatalogInvalid, fmt.Sprintf("Catalog table %s is invalid", table),
		strings.Join(problems, "; "), false, nil)
}

// NewDatabaseConnectionFailedError creates a recoverable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

// NewQueryExecutionFailedError creates a recoverable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true, err)
}

// NewSessionClosedError rejects calls on a torn-down session.
func NewSessionClosedError(sessionID string) *StandardError {
	return newError(ErrCodeSessionClosed, "Session has ended",
		fmt.Sprintf("sessionId: %s", sessionID), false, nil)
}

// NewUnauthenticatedError is returned when no user identity is available.
func NewUnauthenticatedError(details string) *StandardError {
	return newError(ErrCodeUnauthenticated, "No authenticated user", details, false, nil)
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from anywhere in err's chain. It returns ""
// when err carries no StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsRecoverable reports whether the user may retry in the same step.
func IsRecoverable(err error) bool {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Recoverable
	}
	return false
}

// IsValidationError reports whether err belongs to the validation family.
func IsValidationError(err error) bool {
	return GetErrorCategory(CodeOf(err)) == "VALIDATION"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeAmountOutOfRange, ErrCodeTenureOutOfRange,
		ErrCodeInvalidOfferIndex, ErrCodeUnrecognizedInput, ErrCodeOperationInFlight:
		return "VALIDATION"
	case ErrCodeConsentRequired:
		return "CONSENT"
	case ErrCodeEligibilityRejected:
		return "BUSINESS"
	case ErrCodeSimulationFault, ErrCodeRecordNotFound, ErrCodePreconditionFailed:
		return "AGENT"
	case ErrCodeSessionClosed, ErrCodeUnauthenticated:
		return "SESSION"
	}
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	default:
		return "OTHER"
	}
}
