package document

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

var requiredFields = []string{
	document.FieldCustomer, document.FieldProject, document.FieldLocation,
	document.FieldProductType, document.FieldDeliveryType,
}

func allocation(seq int64, prefix document.Prefix) *document.Allocation {
	base := document.FormatBaseNumber(2025, seq)
	return &document.Allocation{
		BaseNumber:     base,
		Prefix:         prefix,
		FullNumber:     document.FormatFullNumber(base, prefix),
		SequenceNumber: seq,
	}
}

func enquiryDoc(t *testing.T, seq int64) *document.Document {
	doc, err := document.NewDocument(allocation(seq, document.PrefixEnquiry),
		"Acme Facades", "Tower B", "Leeds", "Curtain Walling", document.DeliverySupplyOnly, decimal.NewFromInt(20000))
	require.NoError(t, err)
	doc.RefreshCompleteness(requiredFields)
	return doc
}

func TestService_Create(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	allocator := new(MockSequenceAllocator)
	service := NewService(docRepo, nil, allocator, requiredFields)

	allocator.On("Allocate", mock.Anything, document.PrefixEnquiry).Return(allocation(1, document.PrefixEnquiry), nil)
	docRepo.On("SaveWithAudit", mock.Anything, mock.AnythingOfType("*document.Document"), mock.AnythingOfType("*audit.Entry")).Return(nil)

	count := 14
	resp, err := service.Create(context.Background(), CreateDocumentRequest{
		Customer:     "Acme Facades",
		Project:      "Tower B",
		Location:     "Leeds",
		ProductType:  "Curtain Walling",
		DeliveryType: "SUPPLY_AND_INSTALL",
		Value:        decimal.NewFromInt(30000),
		InitialCount: &count,
		RequestedBy:  "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-0001", resp.BaseNumber)
	assert.Equal(t, "2025-0001-ENQ", resp.FullNumber)
	assert.Equal(t, "ENQ", resp.Prefix)
	assert.Equal(t, 100, resp.Completeness)
	assert.Equal(t, 14, *resp.InitialCount)
	assert.Equal(t, 14, *resp.CurrentCount)
	assert.Equal(t, "ACTIVE", resp.Status)

	savedEntry := docRepo.Calls[0].Arguments.Get(2).(*audit.Entry)
	assert.Equal(t, audit.ActionDocumentCreated, savedEntry.Action)
	assert.Equal(t, "alice", savedEntry.Actor)
	allocator.AssertExpectations(t)
	docRepo.AssertExpectations(t)
}

func TestService_Create_IncompleteIntakeIsRecorded(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	allocator := new(MockSequenceAllocator)
	service := NewService(docRepo, nil, allocator, requiredFields)

	allocator.On("Allocate", mock.Anything, document.PrefixEnquiry).Return(allocation(2, document.PrefixEnquiry), nil)
	docRepo.On("SaveWithAudit", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), CreateDocumentRequest{
		Customer:    "Acme Facades",
		Project:     "MISSING",
		RequestedBy: "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, 20, resp.Completeness)
	assert.Equal(t, []string{document.FieldProject, document.FieldLocation,
		document.FieldProductType, document.FieldDeliveryType}, resp.MissingFields)
}

func TestService_Create_AllocatorFailurePropagates(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	allocator := new(MockSequenceAllocator)
	service := NewService(docRepo, nil, allocator, requiredFields)

	allocator.On("Allocate", mock.Anything, document.PrefixEnquiry).Return(nil, shared.ErrAllocationFailed)

	_, err := service.Create(context.Background(), CreateDocumentRequest{RequestedBy: "alice"})

	assert.ErrorIs(t, err, shared.ErrAllocationFailed)
	docRepo.AssertNotCalled(t, "SaveWithAudit", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateFields(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	service := NewService(docRepo, nil, nil, requiredFields)
	doc := enquiryDoc(t, 3)

	docRepo.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)
	docRepo.On("SaveWithAudit", mock.Anything, doc, mock.AnythingOfType("*audit.Entry")).Return(nil)

	current := 16
	resp, err := service.UpdateFields(context.Background(), doc.ID, UpdateFieldsRequest{
		Fields:       map[string]string{document.FieldLocation: "Manchester"},
		InitialCount: &current,
		CurrentCount: &current,
		UpdatedBy:    "bob",
	})

	require.NoError(t, err)
	assert.Equal(t, "Manchester", resp.Location)
	assert.Equal(t, 16, *resp.CurrentCount)
	assert.Equal(t, 100, resp.Completeness)

	entry := docRepo.Calls[1].Arguments.Get(2).(*audit.Entry)
	assert.Equal(t, audit.ActionFieldsUpdated, entry.Action)
}

func TestService_UpdateFields_RejectsUnknownField(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	service := NewService(docRepo, nil, nil, requiredFields)
	doc := enquiryDoc(t, 4)

	docRepo.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)

	_, err := service.UpdateFields(context.Background(), doc.ID, UpdateFieldsRequest{
		Fields:    map[string]string{"Nonsense": "x"},
		UpdatedBy: "bob",
	})

	assert.Error(t, err)
	docRepo.AssertNotCalled(t, "SaveWithAudit", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetCompleteness(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	service := NewService(docRepo, nil, nil, requiredFields)

	doc, err := document.NewDocument(allocation(5, document.PrefixEnquiry),
		"Acme", "MISSING", "", "Windows", "", decimal.Zero)
	require.NoError(t, err)
	docRepo.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)

	resp, err := service.GetCompleteness(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, 40, resp.Completeness)
	assert.Equal(t, []string{document.FieldProject, document.FieldLocation, document.FieldDeliveryType}, resp.MissingFields)
}

func TestService_GetByFullNumber_InvalidFormat(t *testing.T) {
	service := NewService(new(MockDocumentRepository), nil, nil, requiredFields)

	_, err := service.GetByFullNumber(context.Background(), "not-a-number")

	assert.Error(t, err)
}
