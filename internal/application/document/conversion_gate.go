package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/domain/validation"
)

// ConversionGate decides whether a document may progress to its next
// stage and commits the progression when it may. The gates run in a
// fixed order: lifecycle edge, document status, required fields,
// validation checklist, approval. The first gate that fails produces a
// structured Blocked result and nothing is mutated.
type ConversionGate struct {
	docRepo       document.Repository
	checklistRepo validation.Repository
	approvalRepo  approval.Repository
	machine       *document.StageMachine
	required      []string
	notifier      shared.Notifier
}

// NewConversionGate creates a new ConversionGate
func NewConversionGate(docRepo document.Repository, checklistRepo validation.Repository, approvalRepo approval.Repository, machine *document.StageMachine, required []string, notifier shared.Notifier) *ConversionGate {
	return &ConversionGate{
		docRepo:       docRepo,
		checklistRepo: checklistRepo,
		approvalRepo:  approvalRepo,
		machine:       machine,
		required:      required,
		notifier:      notifier,
	}
}

// AttemptTransition runs the gates for one document. A refused
// transition returns a TransitionResult with Blocked set and a nil
// error; errors are reserved for lookups and persistence failing.
func (g *ConversionGate) AttemptTransition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*TransitionResult, error) {
	to := document.Prefix(req.To)
	if !to.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown stage %q", req.To))
	}

	doc, err := g.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !g.machine.IsValidTransition(doc.Prefix, to) {
		return blocked(shared.CodeTransitionNotAllowed,
			fmt.Sprintf("Cannot transition from %s to %s", doc.Prefix, to)), nil
	}

	// QUO→QUO is a revision of the same document, not a progression
	if doc.Prefix == document.PrefixQuote && to == document.PrefixQuote {
		return g.revise(ctx, doc, req)
	}

	if ok, result := g.checkStatus(doc, to); !ok {
		return result, nil
	}
	if result, err := g.checkFields(ctx, doc, to); result != nil || err != nil {
		return result, err
	}
	if doc.Prefix == document.PrefixQuote && to == document.PrefixOrder {
		if result, err := g.checkValidation(ctx, doc); result != nil || err != nil {
			return result, err
		}
		if result, err := g.checkApproval(ctx, doc); result != nil || err != nil {
			return result, err
		}
	}

	return g.commit(ctx, doc, to, req.Actor)
}

// checkStatus refuses documents that already left their stage. A won
// quote is still eligible: winning the approval is what clears it for
// conversion to an order.
func (g *ConversionGate) checkStatus(doc *document.Document, to document.Prefix) (bool, *TransitionResult) {
	switch doc.Status {
	case document.StatusActive:
		return true, nil
	case document.StatusWon:
		if to == document.PrefixOrder {
			return true, nil
		}
	case document.StatusConverted:
		return false, blocked(shared.CodeTransitionNotAllowed,
			fmt.Sprintf("%s was already converted", doc.FullNumber))
	}
	return false, blocked(shared.CodeTransitionNotAllowed,
		fmt.Sprintf("%s is %s and cannot progress", doc.FullNumber, doc.Status))
}

// checkFields runs the required-field gate. Transitions into a binding
// stage additionally demand both product counts; no amount of other
// complete data can substitute for them.
func (g *ConversionGate) checkFields(ctx context.Context, doc *document.Document, to document.Prefix) (*TransitionResult, error) {
	values := doc.FieldValues()

	var result document.FieldValidation
	if to.IsBinding() {
		result = document.ValidateForBindingConversion(values, g.required)
	} else {
		result = document.ValidateRequired(values, g.required)
	}
	if result.Valid {
		return nil, nil
	}

	code := shared.CodeMissingRequiredFields
	if onlyCountsMissing(result.MissingFields) {
		code = shared.CodeMissingProductCount
	}

	if g.notifier != nil {
		alert := document.FormatMissingAlert(result.MissingFields, doc.BaseNumber, doc.Customer)
		// Best effort; the block stands either way
		_ = g.notifier.Notify(ctx, "Progression blocked", alert)
	}

	b := blocked(code, document.MissingFieldsMessage(result.MissingFields))
	b.Blocked.MissingFields = result.MissingFields
	// No amount of other data substitutes for the binding requirements
	b.Blocked.NonNegotiable = to.IsBinding()
	return b, nil
}

// checkValidation requires a fully passed checklist before a quote
// becomes an order.
func (g *ConversionGate) checkValidation(ctx context.Context, doc *document.Document) (*TransitionResult, error) {
	checklist, err := g.checklistRepo.FindByDocumentID(ctx, doc.ID)
	if err != nil {
		if isNotFound(err) {
			b := blocked(shared.CodeValidationError, "Validation checklist has not been started")
			b.Blocked.IncompleteChecks = validation.ApplicableItems(doc.DeliveryType)
			return b, nil
		}
		return nil, err
	}
	if checklist.ValidationPassed {
		return nil, nil
	}
	if !checklist.AllChecksComplete {
		b := blocked(shared.CodeValidationError, "Validation checklist is incomplete")
		b.Blocked.IncompleteChecks = checklist.IncompleteItems()
		return b, nil
	}
	b := blocked(shared.CodeValidationError, "Validation checks did not pass")
	b.Blocked.FailedChecks = checklist.FailedItems()
	return b, nil
}

// checkApproval requires a granted approval before a quote becomes an
// order. The approval coordinator marks the quote won when it resolves,
// so the gate only has to look at the entity status and any open
// request.
func (g *ConversionGate) checkApproval(ctx context.Context, doc *document.Document) (*TransitionResult, error) {
	if doc.Status == document.StatusWon {
		return nil, nil
	}
	open, err := g.approvalRepo.FindOpenByDocumentID(ctx, doc.ID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if open != nil {
		return blocked(shared.CodeApprovalPending,
			fmt.Sprintf("Approval request is %s", open.Status)), nil
	}
	return blocked(shared.CodeApprovalPending, "Quote has not been approved"), nil
}

// commit performs the atomic progression: successor inserted,
// predecessor converted, audit entry appended, in one transaction.
func (g *ConversionGate) commit(ctx context.Context, doc *document.Document, to document.Prefix, actor string) (*TransitionResult, error) {
	successor, err := doc.Successor(to)
	if err != nil {
		return nil, err
	}
	if err := doc.MarkConverted(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionStageConverted, actor, map[string]any{
		"from":         doc.FullNumber,
		"to":           successor.FullNumber,
		"successor_id": successor.ID,
	})
	if err := g.docRepo.CommitConversion(ctx, doc, successor, entry); err != nil {
		return nil, err
	}

	docResp := ToDocumentResponse(doc)
	succResp := ToDocumentResponse(successor)
	return &TransitionResult{Allowed: true, Document: &docResp, Successor: &succResp}, nil
}

// revise bumps a quote revision in place. Revising a lost quote reopens
// it first: a rejection keeps the quote at its stage, and the revision
// is how it re-enters the approval cycle.
func (g *ConversionGate) revise(ctx context.Context, doc *document.Document, req TransitionRequest) (*TransitionResult, error) {
	reopened := false
	if doc.Status == document.StatusLost {
		if err := doc.Reopen(); err != nil {
			return nil, err
		}
		reopened = true
	}

	count := 0
	switch {
	case req.ProductCount != nil:
		count = *req.ProductCount
	case doc.CurrentCount != nil:
		count = *doc.CurrentCount
	}
	if err := doc.Revise(count); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(doc.ID, doc.BaseNumber, audit.ActionQuoteRevised, req.Actor, map[string]any{
		"revision": doc.Revision,
		"count":    count,
		"reopened": reopened,
	})
	if err := g.docRepo.SaveWithAudit(ctx, doc, entry); err != nil {
		return nil, err
	}

	docResp := ToDocumentResponse(doc)
	return &TransitionResult{Allowed: true, Document: &docResp}, nil
}

func blocked(code, message string) *TransitionResult {
	return &TransitionResult{
		Allowed: false,
		Blocked: &BlockedResult{Code: code, Message: message},
	}
}

func onlyCountsMissing(missing []string) bool {
	if len(missing) == 0 {
		return false
	}
	for _, name := range missing {
		if name != document.FieldInitialCount && name != document.FieldCurrentCount {
			return false
		}
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
