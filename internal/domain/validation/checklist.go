package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Named checklist items a quote must pass before it can progress
const (
	ItemProductCount        = "product_count"
	ItemPriceValidation     = "price_validation"
	ItemInstallationPricing = "installation_pricing"
	ItemQuoteType           = "quote_type"
	ItemMarkup              = "markup"
)

// ItemNames returns every known checklist item name
func ItemNames() []string {
	return []string{ItemProductCount, ItemPriceValidation, ItemInstallationPricing, ItemQuoteType, ItemMarkup}
}

// ApplicableItems returns the item set for a delivery type. The
// installation-pricing check only applies to supply-and-install work.
func ApplicableItems(deliveryType document.DeliveryType) []string {
	items := []string{ItemProductCount, ItemPriceValidation}
	if deliveryType == document.DeliverySupplyAndInstall {
		items = append(items, ItemInstallationPricing)
	}
	return append(items, ItemQuoteType, ItemMarkup)
}

// Item is one named check on the validation checklist. Checked records
// that the check was performed, Valid records its outcome. A performed
// check can fail: Checked true with Valid false.
type Item struct {
	Name    string     `json:"name"`
	Checked bool       `json:"checked"`
	Valid   bool       `json:"valid"`
	By      string     `json:"by,omitempty"`
	At      *time.Time `json:"at,omitempty"`
	Note    string     `json:"note,omitempty"`
}

// Checklist tracks the named validation checks for one document.
// AllChecksComplete and ValidationPassed are derived: they are only
// ever set by Recompute, never written directly.
type Checklist struct {
	shared.BaseAggregateRoot
	DocumentID        uuid.UUID             `gorm:"not null;uniqueIndex"`
	DeliveryType      document.DeliveryType `gorm:"not null"`
	Items             []Item                `gorm:"serializer:json"`
	AllChecksComplete bool                  `gorm:"not null;default:false"`
	ValidationPassed  bool                  `gorm:"not null;default:false"`
}

// TableName returns the database table name
func (Checklist) TableName() string {
	return "validation_checklists"
}

// NewChecklist seeds a checklist with the items applicable to the
// document's delivery type, all incomplete.
func NewChecklist(documentID uuid.UUID, deliveryType document.DeliveryType) (*Checklist, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Document ID is required")
	}
	c := &Checklist{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DocumentID:        documentID,
		DeliveryType:      deliveryType,
	}
	for _, name := range ApplicableItems(deliveryType) {
		c.Items = append(c.Items, Item{Name: name})
	}
	c.Recompute()
	return c, nil
}

// RecordCheck records that one named item was performed, with its
// outcome. Re-recording an item replaces the earlier outcome. Items not
// applicable to the document's delivery type are rejected.
func (c *Checklist) RecordCheck(name string, valid bool, by, note string) error {
	for i := range c.Items {
		if c.Items[i].Name != name {
			continue
		}
		now := time.Now()
		c.Items[i].Checked = true
		c.Items[i].Valid = valid
		c.Items[i].By = by
		c.Items[i].Note = note
		c.Items[i].At = &now
		c.UpdatedAt = now
		return nil
	}
	for _, known := range ItemNames() {
		if name == known {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Check %q does not apply to %s documents", name, c.DeliveryType))
		}
	}
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown check %q", name))
}

// ApplyDeliveryType re-seeds applicability after the document's
// delivery type changed, keeping the state of items that survive.
func (c *Checklist) ApplyDeliveryType(deliveryType document.DeliveryType) {
	if deliveryType == c.DeliveryType {
		return
	}
	previous := make(map[string]Item, len(c.Items))
	for _, item := range c.Items {
		previous[item.Name] = item
	}
	items := []Item{}
	for _, name := range ApplicableItems(deliveryType) {
		if kept, ok := previous[name]; ok {
			items = append(items, kept)
		} else {
			items = append(items, Item{Name: name})
		}
	}
	c.DeliveryType = deliveryType
	c.Items = items
	c.UpdatedAt = time.Now()
}

// Recompute refreshes the derived flags and reports whether this call
// moved the checklist from incomplete to complete. AllChecksComplete
// means every item was performed; ValidationPassed additionally means
// every outcome was valid. Callers append the audit entry only on the
// completion edge, so repeated saves of a complete checklist stay
// silent.
func (c *Checklist) Recompute() (completedNow bool) {
	wasComplete := c.AllChecksComplete
	complete := true
	passed := true
	for _, item := range c.Items {
		if !item.Checked {
			complete = false
		}
		if !item.Valid {
			passed = false
		}
	}
	c.AllChecksComplete = complete
	c.ValidationPassed = complete && passed
	return complete && !wasComplete
}

// IncompleteItems returns the names of items not yet performed
func (c *Checklist) IncompleteItems() []string {
	names := []string{}
	for _, item := range c.Items {
		if !item.Checked {
			names = append(names, item.Name)
		}
	}
	return names
}

// FailedItems returns the names of performed items whose outcome failed
func (c *Checklist) FailedItems() []string {
	names := []string{}
	for _, item := range c.Items {
		if item.Checked && !item.Valid {
			names = append(names, item.Name)
		}
	}
	return names
}

// Repository is the persistence port for validation checklists
type Repository interface {
	shared.Repository[Checklist]
	FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*Checklist, error)
}
