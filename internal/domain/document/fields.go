package document

import (
	"fmt"
	"math"
	"strings"
)

// MissingMarker is the sentinel recorded when a required field was
// explicitly flagged absent by intake rather than simply never supplied.
const MissingMarker = "MISSING"

// Canonical required-field names. The required list itself is supplied
// by configuration; these constants are the names the engine itself
// needs to reference.
const (
	FieldCustomer     = "Customer"
	FieldProject      = "Project"
	FieldLocation     = "Location"
	FieldProductType  = "ProductType"
	FieldDeliveryType = "DeliveryType"
	FieldInitialCount = "ENQ_initial_count"
	FieldCurrentCount = "Current_product_count"
)

// FieldValidation is the result of checking a document's fields
type FieldValidation struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields"`
	Errors        []string `json:"errors"`
}

// IsMissing reports whether a field value counts as absent: nil values,
// empty or MISSING-sentinel strings (case-insensitive), NaN and
// negative numbers. Typed nil pointers count as absent too.
func IsMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return isMissingString(v)
	case *string:
		return v == nil || isMissingString(*v)
	case int:
		return v < 0
	case int64:
		return v < 0
	case *int:
		return v == nil || *v < 0
	case *int64:
		return v == nil || *v < 0
	case float64:
		return math.IsNaN(v) || v < 0
	case *float64:
		return v == nil || math.IsNaN(*v) || *v < 0
	}
	return false
}

func isMissingString(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || strings.EqualFold(trimmed, MissingMarker)
}

// ValidateRequired checks the configured required-field list against a
// field map. Order of MissingFields follows the configured list order.
func ValidateRequired(fields map[string]any, required []string) FieldValidation {
	result := FieldValidation{Valid: true, MissingFields: []string{}, Errors: []string{}}
	for _, name := range required {
		if IsMissing(fields[name]) {
			result.MissingFields = append(result.MissingFields, name)
			result.Errors = append(result.Errors, fmt.Sprintf("%s is MISSING or invalid", name))
		}
	}
	result.Valid = len(result.MissingFields) == 0
	return result
}

// ValidateForBindingConversion extends ValidateRequired with the hard
// product-count requirement that governs every transition into ORD or a
// later stage. No other field being complete can satisfy it.
func ValidateForBindingConversion(fields map[string]any, required []string) FieldValidation {
	result := ValidateRequired(fields, required)

	if IsMissing(fields[FieldInitialCount]) {
		result.MissingFields = append(result.MissingFields, FieldInitialCount)
		result.Errors = append(result.Errors, FieldInitialCount+" must be set before converting to a binding stage")
		result.Valid = false
	}
	if IsMissing(fields[FieldCurrentCount]) {
		result.MissingFields = append(result.MissingFields, FieldCurrentCount)
		result.Errors = append(result.Errors, FieldCurrentCount+" must be set before converting to a binding stage")
		result.Valid = false
	}
	return result
}

// Completeness returns the percentage (0-100) of required fields that
// are present. An empty required list counts as fully complete.
func Completeness(fields map[string]any, required []string) int {
	if len(required) == 0 {
		return 100
	}
	present := 0
	for _, name := range required {
		if !IsMissing(fields[name]) {
			present++
		}
	}
	return int(math.Round(float64(present) / float64(len(required)) * 100))
}

// MissingFieldsMessage renders a human-readable summary of missing fields
func MissingFieldsMessage(missing []string) string {
	switch len(missing) {
	case 0:
		return ""
	case 1:
		return "Required field is MISSING: " + missing[0]
	default:
		return "Required fields are MISSING: " + strings.Join(missing, ", ")
	}
}

// FormatMissingAlert renders the escalation message pushed to the
// notification channel when progression is blocked on missing data.
// Pure formatting, no side effects.
func FormatMissingAlert(missing []string, baseNumber, customer string) string {
	if baseNumber == "" {
		baseNumber = "UNKNOWN"
	}
	if customer == "" {
		customer = "UNKNOWN"
	}
	return fmt.Sprintf("RED ALERT: Project %s for %s has MISSING required fields: %s. Action required before progression.",
		baseNumber, customer, strings.Join(missing, ", "))
}
