package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

// MockDocumentRepository implements document.Repository for testing
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) FindByFullNumber(ctx context.Context, fullNumber string) (*document.Document, error) {
	args := m.Called(ctx, fullNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByBaseNumber(ctx context.Context, baseNumber string) ([]*document.Document, error) {
	args := m.Called(ctx, baseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveWithAudit(ctx context.Context, doc *document.Document, entry *audit.Entry) error {
	args := m.Called(ctx, doc, entry)
	return args.Error(0)
}

func (m *MockDocumentRepository) CommitConversion(ctx context.Context, predecessor, successor *document.Document, entry *audit.Entry) error {
	args := m.Called(ctx, predecessor, successor, entry)
	return args.Error(0)
}

func (m *MockDocumentRepository) ExistsByFullNumber(ctx context.Context, fullNumber string) (bool, error) {
	args := m.Called(ctx, fullNumber)
	return args.Bool(0), args.Error(1)
}

var _ document.Repository = (*MockDocumentRepository)(nil)

// MockSequenceAllocator implements document.SequenceAllocator for testing
type MockSequenceAllocator struct {
	mock.Mock
}

func (m *MockSequenceAllocator) Allocate(ctx context.Context, prefix document.Prefix) (*document.Allocation, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Allocation), args.Error(1)
}

var _ document.SequenceAllocator = (*MockSequenceAllocator)(nil)

// MockAuditRepository implements audit.Repository for testing
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*audit.Entry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) FindByBaseNumber(ctx context.Context, baseNumber string) ([]*audit.Entry, error) {
	args := m.Called(ctx, baseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

var _ audit.Repository = (*MockAuditRepository)(nil)

// MockChecklistRepository implements validation.Repository for testing
type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) FindByID(ctx context.Context, id uuid.UUID) (*validation.Checklist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validation.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) FindAll(ctx context.Context, filter shared.Filter) ([]validation.Checklist, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]validation.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) Save(ctx context.Context, checklist *validation.Checklist) error {
	args := m.Called(ctx, checklist)
	return args.Error(0)
}

func (m *MockChecklistRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChecklistRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) (*validation.Checklist, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validation.Checklist), args.Error(1)
}

var _ validation.Repository = (*MockChecklistRepository)(nil)

// MockApprovalRepository implements approval.Repository for testing
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Request), args.Error(1)
}

func (m *MockApprovalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]approval.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]approval.Request), args.Error(1)
}

func (m *MockApprovalRepository) Save(ctx context.Context, request *approval.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockApprovalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApprovalRepository) FindByDocumentID(ctx context.Context, documentID uuid.UUID) ([]*approval.Request, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approval.Request), args.Error(1)
}

func (m *MockApprovalRepository) FindOpenByDocumentID(ctx context.Context, documentID uuid.UUID) (*approval.Request, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Request), args.Error(1)
}

func (m *MockApprovalRepository) Resolve(ctx context.Context, req *approval.Request, doc *document.Document, entry *audit.Entry) error {
	args := m.Called(ctx, req, doc, entry)
	return args.Error(0)
}

var _ approval.Repository = (*MockApprovalRepository)(nil)

// MockWorkflowRepository implements approval.WorkflowRepository for testing
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.Workflow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]approval.Workflow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]approval.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) Save(ctx context.Context, workflow *approval.Workflow) error {
	args := m.Called(ctx, workflow)
	return args.Error(0)
}

func (m *MockWorkflowRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkflowRepository) FindActiveByEntityType(ctx context.Context, entityType approval.EntityType) (*approval.Workflow, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Workflow), args.Error(1)
}

var _ approval.WorkflowRepository = (*MockWorkflowRepository)(nil)

// MockIdempotencyStore implements shared.IdempotencyStore for testing
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, requestID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, requestID string) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ shared.IdempotencyStore = (*MockIdempotencyStore)(nil)
