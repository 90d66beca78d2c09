package document

import (
	"fmt"
	"time"
)

// Product count lineage must hold from ENQ through every QUO revision
// to ORD, INV, DEL and PAID. Only complete deliverable lines with their
// own price count; separately priced accessories count, consumables do
// not.

// RevisionCount records the product count carried by one quote revision
type RevisionCount struct {
	Revision string    `json:"rev"`
	Count    int       `json:"count"`
	At       time.Time `json:"ts"`
}

// CountLogStatus is the review state of one product-count change
type CountLogStatus string

const (
	CountLogPricingNeeded   CountLogStatus = "Pricing Needed"
	CountLogAgreed          CountLogStatus = "Agreed"
	CountLogPendingApproval CountLogStatus = "Pending Approval"
)

// CountLogEntry records one change to the product count
type CountLogEntry struct {
	At                 time.Time      `json:"ts"`
	User               string         `json:"user"`
	Source             string         `json:"source"`
	Additions          []string       `json:"additions"`
	Removals           []string       `json:"removals"`
	Extras             []string       `json:"extras"`
	Note               string         `json:"note"`
	Status             CountLogStatus `json:"status"`
	EstimatorSignoff   bool           `json:"estimator_signoff"`
	FinanceAcknowledge bool           `json:"finance_acknowledged"`
}

// RequiresCountApproval reports whether a count change still needs
// sign-off: it changed the line set and either the estimator or finance
// has not acknowledged it yet.
func (e CountLogEntry) RequiresCountApproval() bool {
	changed := len(e.Additions)+len(e.Removals)+len(e.Extras) > 0
	return changed && (!e.EstimatorSignoff || !e.FinanceAcknowledge)
}

// DeliveryStatus is the delivery-notes readiness colour
type DeliveryStatus string

const (
	DeliveryGreen DeliveryStatus = "Green"
	DeliveryAmber DeliveryStatus = "Amber"
	DeliveryRed   DeliveryStatus = "Red"
)

// DeliveryNotesStatus turns Green when the prepared count equals the
// current count, Red when prepared exceeds current (an error
// condition), Amber otherwise.
func DeliveryNotesStatus(prepared, current int) DeliveryStatus {
	switch {
	case prepared == current && current > 0:
		return DeliveryGreen
	case prepared > current:
		return DeliveryRed
	default:
		return DeliveryAmber
	}
}

// CountValidation is the result of checking product-count continuity
type CountValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateCounts checks product-count continuity for a document:
// both counts set and positive, and fulfilment never exceeding the
// current count. A count that drifted from the initial one is a
// warning, not an error, but needs estimator sign-off downstream.
func ValidateCounts(initial, current *int, prepared, delivered, collected int) CountValidation {
	v := CountValidation{Valid: true, Errors: []string{}, Warnings: []string{}}

	if initial == nil || *initial < 1 {
		v.Errors = append(v.Errors, "ENQ_initial_count must be set and greater than 0")
	}
	if current == nil || *current < 1 {
		v.Errors = append(v.Errors, "Current_product_count must be set and greater than 0")
	}
	if current != nil {
		if prepared > *current {
			v.Errors = append(v.Errors, fmt.Sprintf("Prepared count (%d) cannot exceed current product count (%d)", prepared, *current))
		}
		if delivered+collected > *current {
			v.Errors = append(v.Errors, fmt.Sprintf("Total delivered/collected (%d) cannot exceed current product count (%d)", delivered+collected, *current))
		}
	}
	if initial != nil && current != nil && *initial != *current {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Product count changed from %d to %d. Ensure estimator sign-off and finance acknowledgment.", *initial, *current))
	}

	v.Valid = len(v.Errors) == 0
	return v
}
