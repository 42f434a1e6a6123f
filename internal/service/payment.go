package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/api/dto"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// PaymentService owns the payment obligation lifecycle: status transitions,
// deletion and the per-client billing summary
type PaymentService interface {
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
	MarkPaid(ctx context.Context, id string, req *dto.MarkPaidRequest) (*dto.PaymentResponse, error)
	MarkUnpaid(ctx context.Context, id string) (*dto.PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error
	Summarize(ctx context.Context, clientID string) (*dto.BillingSummaryResponse, error)

	// ReconcileOverdue persists OVERDUE on every pending record whose due
	// date has passed. It is the single writer of the overdue status; reads
	// never derive it, so all read paths agree.
	ReconcileOverdue(ctx context.Context) (int, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

// GetPayment gets a payment record by ID
func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

// ListPayments lists payment records based on filter
func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid payment filter").
			Mark(ierr.ErrValidation)
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = dto.NewPaymentResponse(p)
	}

	return &dto.ListPaymentsResponse{
		Items: items,
		Pagination: types.NewPaginationResponse(
			count,
			filter.GetLimit(),
			filter.GetOffset(),
		),
	}, nil
}

// MarkPaid transitions a pending or overdue record to paid
func (s *paymentService) MarkPaid(ctx context.Context, id string, req *dto.MarkPaidRequest) (*dto.PaymentResponse, error) {
	if err := s.requireBillingAuthority(ctx); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PaymentStatus == types.PaymentStatusPaid {
		return nil, ierr.NewError("payment already paid").
			WithHint("The payment is already marked paid; revert it first").
			Mark(ierr.ErrInvalidOperation)
	}
	if p.PaymentStatus == types.PaymentStatusCancelled {
		return nil, ierr.NewError("payment cancelled").
			WithHint("A cancelled payment cannot be marked paid").
			Mark(ierr.ErrInvalidOperation)
	}

	p.PaymentStatus = types.PaymentStatusPaid
	p.PaidDate = lo.ToPtr(time.Now().UTC())
	if req != nil {
		if req.PaymentMethod != nil {
			p.PaymentMethod = req.PaymentMethod
		}
		if req.Notes != nil {
			p.Notes = req.Notes
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, types.BillingEventPaymentPaid, p.ClientID, p.ID)
	return dto.NewPaymentResponse(p), nil
}

// MarkUnpaid reverts a paid record back to pending
func (s *paymentService) MarkUnpaid(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if err := s.requireBillingAuthority(ctx); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PaymentStatus != types.PaymentStatusPaid {
		return nil, ierr.NewError("payment not paid").
			WithHint("Only a paid payment can be reverted to pending").
			Mark(ierr.ErrInvalidOperation)
	}

	p.PaymentStatus = types.PaymentStatusPending
	p.PaidDate = nil

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, types.BillingEventPaymentUnpaid, p.ClientID, p.ID)
	return dto.NewPaymentResponse(p), nil
}

// DeletePayment hard-deletes a payment record. The destructive confirmation
// happens at the UI layer; by the time this runs it is irreversible.
func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	if err := s.requireBillingAuthority(ctx); err != nil {
		return err
	}

	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.PaymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, types.BillingEventPaymentDeleted, p.ClientID, p.ID)
	return nil
}

// Summarize recomputes the client billing aggregate from the current rows.
// It has no side effects and is recomputed on every call so concurrent
// status changes never leave a stale total.
func (s *paymentService) Summarize(ctx context.Context, clientID string) (*dto.BillingSummaryResponse, error) {
	if clientID == "" {
		return nil, ierr.NewError("client id is required").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}

	filter := types.NewNoLimitPaymentFilter()
	filter.ClientID = &clientID
	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &dto.BillingSummaryResponse{
		ClientID:          clientID,
		Paid:              decimal.Zero,
		Pending:           decimal.Zero,
		Overdue:           decimal.Zero,
		PendingFinalTotal: decimal.Zero,
	}

	for _, p := range payments {
		switch p.PaymentStatus {
		case types.PaymentStatusPaid:
			summary.Paid = summary.Paid.Add(p.Amount)
		case types.PaymentStatusPending:
			summary.Pending = summary.Pending.Add(p.Amount)
		case types.PaymentStatusOverdue:
			summary.Overdue = summary.Overdue.Add(p.Amount)
		}
	}

	pfiFilter := &types.PendingInvoiceFilter{
		QueryFilter:          types.NewNoLimitQueryFilter(),
		ClientID:             &clientID,
		PendingInvoiceStatus: lo.ToPtr(types.PendingInvoiceStatusPending),
	}
	commitments, err := s.PendingInvoiceRepo.List(ctx, pfiFilter)
	if err != nil {
		return nil, err
	}

	// only open commitments count; a completed commitment's remainder is
	// already represented by its final invoice's payment record
	for _, pfi := range commitments {
		summary.PendingFinalTotal = summary.PendingFinalTotal.Add(pfi.RemainingAmount)
	}

	summary.Total = summary.Paid.
		Add(summary.Pending).
		Add(summary.Overdue).
		Add(summary.PendingFinalTotal)

	return summary, nil
}

// ReconcileOverdue flips due pending records to overdue
func (s *paymentService) ReconcileOverdue(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	filter := types.NewNoLimitPaymentFilter()
	filter.PaymentStatus = lo.ToPtr(types.PaymentStatusPending.String())
	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, p := range payments {
		if !p.IsDueBefore(now) {
			continue
		}

		p.PaymentStatus = types.PaymentStatusOverdue
		if err := s.PaymentRepo.Update(ctx, p); err != nil {
			s.Logger.Errorw("failed to mark payment overdue",
				"payment_id", p.ID,
				"error", err,
			)
			continue
		}

		reconciled++
		s.publish(ctx, types.BillingEventPaymentOverdue, p.ClientID, p.ID)
	}

	if reconciled > 0 {
		s.Logger.Infow("overdue reconciliation pass complete", "reconciled", reconciled)
	}
	return reconciled, nil
}

func (s *paymentService) requireBillingAuthority(ctx context.Context) error {
	role := types.GetUserRole(ctx)
	if !role.HasBillingAuthority() {
		return ierr.NewError("billing authority required").
			WithHint("You are not allowed to change payment state").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

func (s *paymentService) publish(ctx context.Context, name types.BillingEventName, clientID, entityID string) {
	event := types.NewBillingEvent(name, clientID, entityID)
	if err := s.BillingPublisher.PublishBillingEvent(ctx, event); err != nil {
		// notification failures must not fail the mutation
		s.Logger.Errorw("failed to publish billing event",
			"event_name", name,
			"client_id", clientID,
			"error", err,
		)
	}
}
