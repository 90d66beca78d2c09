package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Progression-gating error codes. Upstream callers switch on these, so
// they are stable API.
const (
	CodeAllocationFailed      = "ALLOCATION_FAILED"
	CodeTransitionNotAllowed  = "TRANSITION_NOT_ALLOWED"
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeMissingProductCount   = "MISSING_PRODUCT_COUNT"
	CodeApprovalPending       = "APPROVAL_PENDING"
	CodeSelfApprovalForbidden = "SELF_APPROVAL_FORBIDDEN"
	CodeNoActiveWorkflow      = "NO_ACTIVE_WORKFLOW"
	CodeValidationError       = "VALIDATION_ERROR"
)

var (
	// ErrAllocationFailed is returned when sequence allocation exhausts its
	// retry budget under contention. Retryable by the caller.
	ErrAllocationFailed = NewDomainError(CodeAllocationFailed, "Failed to allocate base number under contention")
	// ErrNoActiveWorkflow signals a configuration gap: no active approval
	// workflow exists for the requested entity and approval type.
	ErrNoActiveWorkflow = NewDomainError(CodeNoActiveWorkflow, "No active approval workflow configured")
	// ErrSelfApprovalForbidden is returned when the requester of a mandatory
	// approval attempts to resolve it.
	ErrSelfApprovalForbidden = NewDomainError(CodeSelfApprovalForbidden, "Mandatory approvals cannot be resolved by their requester")
)
