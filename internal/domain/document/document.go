package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Status represents the status of a document within its stage
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusWon       Status = "WON"
	StatusLost      Status = "LOST"
	StatusConverted Status = "CONVERTED"
)

// IsValid checks if the status is a valid document status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusWon, StatusLost, StatusConverted:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// DeliveryType classifies how the work is fulfilled. SUPPLY_AND_INSTALL
// is the high-risk category: it forces mandatory approval and makes the
// installation-pricing checklist item applicable.
type DeliveryType string

const (
	DeliverySupplyOnly       DeliveryType = "SUPPLY_ONLY"
	DeliveryCollected        DeliveryType = "COLLECTED"
	DeliverySupplyAndInstall DeliveryType = "SUPPLY_AND_INSTALL"
)

// IsValid checks if the delivery type is known
func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliverySupplyOnly, DeliveryCollected, DeliverySupplyAndInstall:
		return true
	}
	return false
}

// Document is the aggregate root for one stage of a business-document
// lineage. Every stage of the same lineage shares a BaseNumber; the
// prefix tells the stage apart. The full number is unique.
type Document struct {
	shared.BaseAggregateRoot
	BaseNumber     string `gorm:"not null;index"`
	Prefix         Prefix `gorm:"not null"`
	FullNumber     string `gorm:"not null;uniqueIndex"`
	Customer       string
	Project        string
	Location       string
	ProductType    string
	DeliveryType   DeliveryType
	Value          decimal.Decimal `gorm:"type:decimal(14,2)"`
	InitialCount   *int
	CurrentCount   *int
	PreparedCount  int
	DeliveredCount int
	CollectedCount int
	Revision       int
	RevisionCounts []RevisionCount `gorm:"serializer:json"`
	CountLog       []CountLogEntry `gorm:"serializer:json"`
	MissingFields  []string        `gorm:"serializer:json"`
	Completeness   int             `gorm:"column:data_completeness"`
	CanonicalPath  string
	MonthShortcut  string
	Status         Status `gorm:"not null;index"`
	ConvertedAt    *time.Time
	LostReason     string
}

// TableName returns the database table name
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a document from a fresh allocation. Missing
// intake values are stored as-is (empty or the MISSING marker); the
// caller refreshes completeness against the configured required list.
func NewDocument(alloc *Allocation, customer, project, location, productType string, deliveryType DeliveryType, value decimal.Decimal) (*Document, error) {
	if alloc == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation is required")
	}
	if !ValidateBaseNumber(alloc.BaseNumber) {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid base number %q", alloc.BaseNumber))
	}
	if !alloc.Prefix.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid prefix %q", alloc.Prefix))
	}
	if deliveryType != "" && !deliveryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid delivery type %q", deliveryType))
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Value cannot be negative")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BaseNumber:        alloc.BaseNumber,
		Prefix:            alloc.Prefix,
		FullNumber:        alloc.FullNumber,
		Customer:          customer,
		Project:           project,
		Location:          location,
		ProductType:       productType,
		DeliveryType:      deliveryType,
		Value:             value,
		RevisionCounts:    []RevisionCount{},
		CountLog:          []CountLogEntry{},
		MissingFields:     []string{},
		Status:            StatusActive,
	}
	doc.refreshPaths()
	return doc, nil
}

// FieldValues exposes the document's gated fields by their canonical
// names for the required-field validator.
func (d *Document) FieldValues() map[string]any {
	values := map[string]any{
		"BaseNumber":      d.BaseNumber,
		"Prefix":          d.Prefix.String(),
		FieldCustomer:     d.Customer,
		FieldProject:      d.Project,
		FieldLocation:     d.Location,
		FieldProductType:  d.ProductType,
		FieldDeliveryType: string(d.DeliveryType),
	}
	if d.InitialCount != nil {
		values[FieldInitialCount] = *d.InitialCount
	}
	if d.CurrentCount != nil {
		values[FieldCurrentCount] = *d.CurrentCount
	}
	return values
}

// SetField updates one gated field by its canonical name.
// Only allowed while the document is still active at its stage.
func (d *Document) SetField(name, value string) error {
	if d.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot update fields of a non-active document")
	}
	switch name {
	case FieldCustomer:
		d.Customer = value
	case FieldProject:
		d.Project = value
	case FieldLocation:
		d.Location = value
	case FieldProductType:
		d.ProductType = value
	case FieldDeliveryType:
		dt := DeliveryType(value)
		if value != "" && !dt.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid delivery type %q", value))
		}
		d.DeliveryType = dt
	default:
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown field %q", name))
	}
	d.refreshPaths()
	d.UpdatedAt = time.Now()
	return nil
}

// SetCounts sets the product counts and appends a count-log entry
// describing the change. Counts must be positive when set.
func (d *Document) SetCounts(initial, current *int, entry CountLogEntry) error {
	if d.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot update counts of a non-active document")
	}
	if initial != nil && *initial < 1 {
		return shared.NewDomainError("INVALID_INPUT", "ENQ_initial_count must be greater than 0")
	}
	if current != nil && *current < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Current_product_count must be greater than 0")
	}
	if initial != nil {
		d.InitialCount = initial
	}
	if current != nil {
		d.CurrentCount = current
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	d.CountLog = append(d.CountLog, entry)
	d.UpdatedAt = time.Now()
	return nil
}

// RefreshCompleteness recomputes the stored missing-field list and
// completeness percentage against the configured required list.
func (d *Document) RefreshCompleteness(required []string) {
	values := d.FieldValues()
	result := ValidateRequired(values, required)
	d.MissingFields = result.MissingFields
	d.Completeness = Completeness(values, required)
	d.UpdatedAt = time.Now()
}

// Revise bumps the quote revision and records the count the revision
// carries. Only a QUO document can be revised.
func (d *Document) Revise(count int) error {
	if d.Prefix != PrefixQuote {
		return shared.NewDomainError("INVALID_STATE", "Only quotes can be revised")
	}
	if d.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot revise a non-active quote")
	}
	d.Revision++
	d.RevisionCounts = append(d.RevisionCounts, RevisionCount{
		Revision: fmt.Sprintf("R%d", d.Revision),
		Count:    count,
		At:       time.Now(),
	})
	if count > 0 {
		d.CurrentCount = &count
	}
	d.UpdatedAt = time.Now()
	return nil
}

// Successor builds the next-stage document of the same lineage,
// carrying forward the base number, fields and product-count history.
// The allocation invariant holds: the base number never changes.
func (d *Document) Successor(to Prefix) (*Document, error) {
	if !to.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid prefix %q", to))
	}
	succ := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BaseNumber:        d.BaseNumber,
		Prefix:            to,
		FullNumber:        FormatFullNumber(d.BaseNumber, to),
		Customer:          d.Customer,
		Project:           d.Project,
		Location:          d.Location,
		ProductType:       d.ProductType,
		DeliveryType:      d.DeliveryType,
		Value:             d.Value,
		InitialCount:      d.InitialCount,
		CurrentCount:      d.CurrentCount,
		PreparedCount:     d.PreparedCount,
		DeliveredCount:    d.DeliveredCount,
		CollectedCount:    d.CollectedCount,
		RevisionCounts:    append([]RevisionCount{}, d.RevisionCounts...),
		CountLog:          append([]CountLogEntry{}, d.CountLog...),
		MissingFields:     []string{},
		Completeness:      100,
		Status:            StatusActive,
	}
	succ.refreshPaths()
	return succ, nil
}

// MarkConverted closes this stage after its successor was committed
func (d *Document) MarkConverted() error {
	if d.Status == StatusConverted {
		return shared.NewDomainError("INVALID_STATE", "Document is already converted")
	}
	now := time.Now()
	d.Status = StatusConverted
	d.ConvertedAt = &now
	d.UpdatedAt = now
	return nil
}

// MarkWon records a successful approval outcome on the entity
func (d *Document) MarkWon() error {
	if d.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark %s document as won", d.Status))
	}
	d.Status = StatusWon
	d.UpdatedAt = time.Now()
	return nil
}

// MarkLost records a rejection; the document stays at its stage with
// the reason and remains eligible for revision and resubmission.
func (d *Document) MarkLost(reason string) error {
	if d.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark %s document as lost", d.Status))
	}
	d.Status = StatusLost
	d.LostReason = reason
	d.UpdatedAt = time.Now()
	return nil
}

// Reopen returns a lost document to active so a revision can be
// resubmitted for approval.
func (d *Document) Reopen() error {
	if d.Status != StatusLost {
		return shared.NewDomainError("INVALID_STATE", "Only lost documents can be reopened")
	}
	d.Status = StatusActive
	d.LostReason = ""
	d.UpdatedAt = time.Now()
	return nil
}

// DeliveryReadiness returns the delivery-notes colour for this document
func (d *Document) DeliveryReadiness() DeliveryStatus {
	current := 0
	if d.CurrentCount != nil {
		current = *d.CurrentCount
	}
	return DeliveryNotesStatus(d.PreparedCount, current)
}

// refreshPaths recomputes the canonical and month-shortcut paths. The
// canonical path stays empty until all of its components are present.
func (d *Document) refreshPaths() {
	path, err := CanonicalPath(d.BaseNumber, d.Prefix, d.Customer, d.Project, d.Location, d.ProductType, string(d.DeliveryType))
	if err == nil {
		d.CanonicalPath = path
	}
	d.MonthShortcut = MonthShortcutPath(time.Now())
}
