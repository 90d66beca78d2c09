package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authorization error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeTransitionNotAllowed is used when a stage edge is not in the progression table
	ErrCodeTransitionNotAllowed = "ERR_TRANSITION_NOT_ALLOWED"
	// ErrCodeMissingRequiredFields is used when gated fields are incomplete
	ErrCodeMissingRequiredFields = "ERR_MISSING_REQUIRED_FIELDS"
	// ErrCodeMissingProductCount is used when product counts block a binding conversion
	ErrCodeMissingProductCount = "ERR_MISSING_PRODUCT_COUNT"
	// ErrCodeValidationIncomplete is used when the quote checklist has not passed
	ErrCodeValidationIncomplete = "ERR_VALIDATION_INCOMPLETE"
	// ErrCodeApprovalPending is used when a conversion waits on approval
	ErrCodeApprovalPending = "ERR_APPROVAL_PENDING"
	// ErrCodeSelfApprovalForbidden is used when a requester resolves their own mandatory approval
	ErrCodeSelfApprovalForbidden = "ERR_SELF_APPROVAL_FORBIDDEN"
	// ErrCodeNoActiveWorkflow is used when no approval workflow is configured
	ErrCodeNoActiveWorkflow = "ERR_NO_ACTIVE_WORKFLOW"
	// ErrCodeAllocationFailed is used when base number allocation exhausts retries
	ErrCodeAllocationFailed = "ERR_ALLOCATION_FAILED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:          http.StatusUnprocessableEntity,
	ErrCodeTransitionNotAllowed:  http.StatusUnprocessableEntity,
	ErrCodeMissingRequiredFields: http.StatusUnprocessableEntity,
	ErrCodeMissingProductCount:   http.StatusUnprocessableEntity,
	ErrCodeValidationIncomplete:  http.StatusUnprocessableEntity,
	ErrCodeApprovalPending:       http.StatusUnprocessableEntity,
	ErrCodeSelfApprovalForbidden: http.StatusForbidden,
	ErrCodeNoActiveWorkflow:      http.StatusConflict,
	ErrCodeAllocationFailed:      http.StatusServiceUnavailable,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps bare domain error codes to the standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"UNAUTHORIZED":            ErrCodeUnauthorized,
	"FORBIDDEN":               ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":    ErrCodeConcurrencyConflict,
	"TRANSITION_NOT_ALLOWED":  ErrCodeTransitionNotAllowed,
	"MISSING_REQUIRED_FIELDS": ErrCodeMissingRequiredFields,
	"MISSING_PRODUCT_COUNT":   ErrCodeMissingProductCount,
	"VALIDATION_ERROR":        ErrCodeValidationIncomplete,
	"APPROVAL_PENDING":        ErrCodeApprovalPending,
	"SELF_APPROVAL_FORBIDDEN": ErrCodeSelfApprovalForbidden,
	"NO_ACTIVE_WORKFLOW":      ErrCodeNoActiveWorkflow,
	"ALLOCATION_FAILED":       ErrCodeAllocationFailed,
	"BAD_REQUEST":             ErrCodeBadRequest,
	"INTERNAL_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a bare domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
