package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

// MockDocumentRepository is a mock implementation of document.Repository
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

// MockSequenceAllocator is a mock implementation of document.SequenceAllocator
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

// MockChecklistRepository is a mock implementation of validation.Repository
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

// MockApprovalRepository is a mock implementation of approval.Repository
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

func (m *MockApprovalRepository) Save(ctx context.Context, req *approval.Request) error {
	args := m.Called(ctx, req)
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

// MockNotifier is a mock implementation of shared.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
