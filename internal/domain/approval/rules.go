package approval

import (
	"github.com/shopspring/decimal"

	"github.com/sfgnexus/backend/internal/domain/document"
)

// Rules holds the monetary thresholds and risk categories that drive
// approval gating. Values come from configuration; the defaults mirror
// company policy.
type Rules struct {
	SecondApprovalThreshold decimal.Decimal
	MandatoryThreshold      decimal.Decimal
	MandatoryCategories     map[document.DeliveryType]bool
}

// DefaultRules returns the standing policy: a second approval above
// 25000, mandatory approval above 50000 or for supply-and-install work.
func DefaultRules() Rules {
	return Rules{
		SecondApprovalThreshold: decimal.NewFromInt(25000),
		MandatoryThreshold:      decimal.NewFromInt(50000),
		MandatoryCategories: map[document.DeliveryType]bool{
			document.DeliverySupplyAndInstall: true,
		},
	}
}

// RequiresSecondApproval reports whether a request needs two distinct
// approvers: value strictly above the second-approval threshold, or a
// mandatory-category delivery type.
func (r Rules) RequiresSecondApproval(value decimal.Decimal, deliveryType document.DeliveryType) bool {
	return value.GreaterThan(r.SecondApprovalThreshold) || r.MandatoryCategories[deliveryType]
}

// MandatoryApproval reports whether approval cannot be waived:
// mandatory-category work or value strictly above the mandatory
// threshold.
func (r Rules) MandatoryApproval(value decimal.Decimal, deliveryType document.DeliveryType) bool {
	return r.MandatoryCategories[deliveryType] || value.GreaterThan(r.MandatoryThreshold)
}

// CanSelfApprove is the inverse of MandatoryApproval: the requester may
// resolve their own request only when approval is not mandatory.
func (r Rules) CanSelfApprove(value decimal.Decimal, deliveryType document.DeliveryType) bool {
	return !r.MandatoryApproval(value, deliveryType)
}
