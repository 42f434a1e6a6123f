package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	"github.com/glowdesk/glowdesk/internal/domain/payment"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

var two = decimal.NewFromInt(2)

// DraftingService is the bridge to the invoice authoring screen: it
// produces prefilled drafts and is the only code path that creates payment
// records and commitments, at invoice-issuance time
type DraftingService interface {
	// DraftFirstInvoice proposes an advance invoice at half the contract
	// amount. Offered only while the client has no payment records and no
	// commitments and a contract with a budget is on file.
	DraftFirstInvoice(ctx context.Context, clientID string) (*dto.InvoiceDraftResponse, error)

	// DraftFinalInvoice prefills a final invoice from an open commitment,
	// carrying the commitment id through so issuance can close it
	DraftFinalInvoice(ctx context.Context, pendingFinalInvoiceID string) (*dto.InvoiceDraftResponse, error)

	// DraftFullInvoice prefills a one-shot invoice for the whole contract;
	// it never touches the commitment tracker
	DraftFullInvoice(ctx context.Context, clientID string) (*dto.InvoiceDraftResponse, error)

	// RecordIssuedInvoice registers an issued invoice with the billing
	// subsystem: one payment record always, plus a commitment opened
	// (advance) or closed (final), atomically
	RecordIssuedInvoice(ctx context.Context, req *dto.IssueInvoiceRequest) (*dto.PaymentResponse, error)
}

type draftingService struct {
	ServiceParams
	tracker PendingInvoiceService
}

// NewDraftingService creates a new drafting service
func NewDraftingService(params ServiceParams) DraftingService {
	return &draftingService{
		ServiceParams: params,
		tracker:       NewPendingInvoiceService(params),
	}
}

func (s *draftingService) DraftFirstInvoice(ctx context.Context, clientID string) (*dto.InvoiceDraftResponse, error) {
	if clientID == "" {
		return nil, ierr.NewError("client id is required").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}

	paymentFilter := types.NewNoLimitPaymentFilter()
	paymentFilter.ClientID = &clientID
	paymentCount, err := s.PaymentRepo.Count(ctx, paymentFilter)
	if err != nil {
		return nil, err
	}

	pfiCount, err := s.PendingInvoiceRepo.Count(ctx, &types.PendingInvoiceFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ClientID:    &clientID,
	})
	if err != nil {
		return nil, err
	}

	if paymentCount > 0 || pfiCount > 0 {
		return nil, ierr.NewError("client already has billing history").
			WithHint("A first invoice can only be proposed before any billing exists").
			Mark(ierr.ErrInvalidOperation)
	}

	contract, err := s.DocumentRepo.GetLatestContract(ctx, clientID)
	if err != nil {
		return nil, err
	}
	contractData, err := contract.ContractVariant()
	if err != nil {
		return nil, err
	}
	if contractData.Budget.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("contract has no budget").
			WithHint("The client contract does not carry an amount to invoice").
			Mark(ierr.ErrInvalidOperation)
	}

	advance := contractData.Budget.Div(two).Round(2)
	return &dto.InvoiceDraftResponse{
		ClientID:    clientID,
		InvoiceType: types.InvoiceTypeAdvance,
		Amount:      advance,
		TotalAmount: &contractData.Budget,
	}, nil
}

func (s *draftingService) DraftFinalInvoice(ctx context.Context, pendingFinalInvoiceID string) (*dto.InvoiceDraftResponse, error) {
	pfi, err := s.PendingInvoiceRepo.Get(ctx, pendingFinalInvoiceID)
	if err != nil {
		return nil, err
	}

	if !pfi.IsOpen() {
		return nil, ierr.NewError("commitment not open").
			WithHintf("Commitment %s has already been completed or cancelled", pfi.ID).
			Mark(ierr.ErrInvalidOperation)
	}

	return &dto.InvoiceDraftResponse{
		ClientID:              pfi.ClientID,
		InvoiceType:           types.InvoiceTypeFinal,
		Amount:                pfi.RemainingAmount,
		AdvanceAmount:         &pfi.AdvanceAmount,
		TotalAmount:           &pfi.TotalAmount,
		PendingFinalInvoiceID: &pfi.ID,
	}, nil
}

func (s *draftingService) DraftFullInvoice(ctx context.Context, clientID string) (*dto.InvoiceDraftResponse, error) {
	if clientID == "" {
		return nil, ierr.NewError("client id is required").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}

	draft := &dto.InvoiceDraftResponse{
		ClientID:    clientID,
		InvoiceType: types.InvoiceTypeFull,
		Amount:      decimal.Zero,
	}

	contract, err := s.DocumentRepo.GetLatestContract(ctx, clientID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// no contract on file, the author fills the amount in
			return draft, nil
		}
		return nil, err
	}
	if contractData, err := contract.ContractVariant(); err == nil {
		draft.Amount = contractData.Budget
	}

	return draft, nil
}

func (s *draftingService) RecordIssuedInvoice(ctx context.Context, req *dto.IssueInvoiceRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// the document must have been issued as an invoice of the stated type
	doc, err := s.DocumentRepo.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	invoice, err := doc.InvoiceVariant()
	if err != nil {
		return nil, err
	}
	if invoice.InvoiceType != req.InvoiceType {
		return nil, ierr.NewError("invoice type mismatch").
			WithHintf("Document %s was issued as a %s invoice", doc.ID, invoice.InvoiceType).
			Mark(ierr.ErrValidation)
	}

	p := &payment.PaymentRecord{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		ClientID:      req.ClientID,
		DocumentID:    &req.DocumentID,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PaymentRepo.Create(ctx, p); err != nil {
			return err
		}

		switch req.InvoiceType {
		case types.InvoiceTypeAdvance:
			_, err := s.tracker.OpenForAdvance(ctx, req.ClientID, req.DocumentID,
				req.Amount, *req.TotalAmount, req.ExpectedFinalDate)
			return err
		case types.InvoiceTypeFinal:
			pfi, err := s.PendingInvoiceRepo.Get(ctx, *req.PendingFinalInvoiceID)
			if err != nil {
				return err
			}
			_, err = s.tracker.CloseWithFinal(ctx, pfi.AdvanceInvoiceID, req.DocumentID)
			return err
		default:
			// full invoices never involve the tracker
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, types.BillingEventInvoiceIssued, req.ClientID, req.DocumentID)
	return dto.NewPaymentResponse(p), nil
}

func (s *draftingService) publish(ctx context.Context, name types.BillingEventName, clientID, entityID string) {
	event := types.NewBillingEvent(name, clientID, entityID)
	if err := s.BillingPublisher.PublishBillingEvent(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish billing event",
			"event_name", name,
			"client_id", clientID,
			"error", err,
		)
	}
}
