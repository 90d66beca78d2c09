package approval

import (
	"context"

	"github.com/sfgnexus/backend/internal/domain/shared"
)

// EntityType names the kind of business document a workflow governs
type EntityType string

const (
	EntityQuote EntityType = "quote"
	EntityOrder EntityType = "order"
)

// Workflow is a named approval workflow for one entity type. Requests
// can only be raised against an active workflow; with none active the
// coordinator refuses the request outright.
type Workflow struct {
	shared.BaseAggregateRoot
	Name               string     `gorm:"not null"`
	EntityType         EntityType `gorm:"not null;index"`
	ApproverRole       string     `gorm:"not null"`
	SecondApproverRole string
	Active             bool `gorm:"not null;default:true;index"`
}

// TableName returns the database table name
func (Workflow) TableName() string {
	return "approval_workflows"
}

// NewWorkflow creates an active workflow for an entity type
func NewWorkflow(name string, entityType EntityType, approverRole, secondApproverRole string) (*Workflow, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Workflow name is required")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Workflow entity type is required")
	}
	if approverRole == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Workflow approver role is required")
	}
	return &Workflow{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		EntityType:         entityType,
		ApproverRole:       approverRole,
		SecondApproverRole: secondApproverRole,
		Active:             true,
	}, nil
}

// Deactivate retires the workflow so no new requests can use it
func (w *Workflow) Deactivate() {
	w.Active = false
}

// WorkflowRepository is the persistence port for approval workflows
type WorkflowRepository interface {
	shared.Repository[Workflow]
	FindActiveByEntityType(ctx context.Context, entityType EntityType) (*Workflow, error)
}
