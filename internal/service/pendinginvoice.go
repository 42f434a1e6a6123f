package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// PendingInvoiceService tracks open commitments: advance invoices whose
// final invoice for the remainder is still owed
type PendingInvoiceService interface {
	// OpenForAdvance opens a commitment when an advance invoice is issued.
	// The remaining amount is fixed at total minus advance and never
	// re-derived afterwards.
	OpenForAdvance(ctx context.Context, clientID, advanceInvoiceID string, advanceAmount, totalAmount decimal.Decimal, expectedDate *time.Time) (*dto.PendingInvoiceResponse, error)

	// CloseWithFinal completes the commitment opened by the given advance
	// invoice, linking it to the issued final invoice
	CloseWithFinal(ctx context.Context, advanceInvoiceID, finalInvoiceID string) (*dto.PendingInvoiceResponse, error)

	// ListOpen returns a client's open commitments, expected date ascending
	// with undated commitments last
	ListOpen(ctx context.Context, clientID string) (*dto.ListPendingInvoicesResponse, error)

	// GetPendingInvoice returns a commitment by id
	GetPendingInvoice(ctx context.Context, id string) (*dto.PendingInvoiceResponse, error)
}

type pendingInvoiceService struct {
	ServiceParams
}

// NewPendingInvoiceService creates a new pending invoice service
func NewPendingInvoiceService(params ServiceParams) PendingInvoiceService {
	return &pendingInvoiceService{ServiceParams: params}
}

func (s *pendingInvoiceService) OpenForAdvance(ctx context.Context, clientID, advanceInvoiceID string, advanceAmount, totalAmount decimal.Decimal, expectedDate *time.Time) (*dto.PendingInvoiceResponse, error) {
	if advanceAmount.LessThanOrEqual(decimal.Zero) || totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("invalid amount").
			WithHint("Advance and total amounts must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if advanceAmount.GreaterThan(totalAmount) {
		return nil, ierr.NewError("advance amount exceeds total amount").
			WithHint("Advance amount cannot exceed the total amount").
			WithReportableDetails(map[string]any{
				"advance_amount": advanceAmount.String(),
				"total_amount":   totalAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	// at most one open commitment per advance invoice
	existing, err := s.PendingInvoiceRepo.GetOpenByAdvanceInvoiceID(ctx, advanceInvoiceID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("commitment already open").
			WithHintf("Advance invoice %s already has an open final invoice commitment", advanceInvoiceID).
			Mark(ierr.ErrAlreadyExists)
	}

	pfi := &pendinginvoice.PendingFinalInvoice{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PENDING_INVOICE),
		ClientID:             clientID,
		AdvanceInvoiceID:     advanceInvoiceID,
		AdvanceAmount:        advanceAmount,
		TotalAmount:          totalAmount,
		RemainingAmount:      totalAmount.Sub(advanceAmount),
		ExpectedDate:         expectedDate,
		PendingInvoiceStatus: types.PendingInvoiceStatusPending,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}

	if err := pfi.Validate(); err != nil {
		return nil, err
	}
	if err := s.PendingInvoiceRepo.Create(ctx, pfi); err != nil {
		return nil, err
	}

	s.publish(ctx, types.BillingEventPendingInvoiceOpened, pfi.ClientID, pfi.ID)
	return dto.NewPendingInvoiceResponse(pfi), nil
}

func (s *pendingInvoiceService) CloseWithFinal(ctx context.Context, advanceInvoiceID, finalInvoiceID string) (*dto.PendingInvoiceResponse, error) {
	if finalInvoiceID == "" {
		return nil, ierr.NewError("final invoice id is required").
			WithHint("Final invoice id is required").
			Mark(ierr.ErrValidation)
	}

	// full invoices never open a commitment, so a miss here is a caller bug
	pfi, err := s.PendingInvoiceRepo.GetOpenByAdvanceInvoiceID(ctx, advanceInvoiceID)
	if err != nil {
		return nil, err
	}

	pfi.FinalInvoiceID = &finalInvoiceID
	pfi.PendingInvoiceStatus = types.PendingInvoiceStatusCompleted

	if err := pfi.Validate(); err != nil {
		return nil, err
	}
	if err := s.PendingInvoiceRepo.Update(ctx, pfi); err != nil {
		return nil, err
	}

	s.publish(ctx, types.BillingEventPendingInvoiceClosed, pfi.ClientID, pfi.ID)
	return dto.NewPendingInvoiceResponse(pfi), nil
}

func (s *pendingInvoiceService) ListOpen(ctx context.Context, clientID string) (*dto.ListPendingInvoicesResponse, error) {
	if clientID == "" {
		return nil, ierr.NewError("client id is required").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}

	filter := &types.PendingInvoiceFilter{
		QueryFilter:          types.NewNoLimitQueryFilter(),
		ClientID:             &clientID,
		PendingInvoiceStatus: lo.ToPtr(types.PendingInvoiceStatusPending),
	}

	rows, err := s.PendingInvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PendingInvoiceResponse, len(rows))
	for i, pfi := range rows {
		items[i] = dto.NewPendingInvoiceResponse(pfi)
	}

	return &dto.ListPendingInvoicesResponse{
		Items: items,
		Pagination: types.NewPaginationResponse(
			len(items),
			filter.GetLimit(),
			filter.GetOffset(),
		),
	}, nil
}

func (s *pendingInvoiceService) GetPendingInvoice(ctx context.Context, id string) (*dto.PendingInvoiceResponse, error) {
	pfi, err := s.PendingInvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPendingInvoiceResponse(pfi), nil
}

func (s *pendingInvoiceService) publish(ctx context.Context, name types.BillingEventName, clientID, entityID string) {
	event := types.NewBillingEvent(name, clientID, entityID)
	if err := s.BillingPublisher.PublishBillingEvent(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish billing event",
			"event_name", name,
			"client_id", clientID,
			"error", err,
		)
	}
}
