package testutil

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// InMemoryPendingInvoiceStore implements pendinginvoice.Repository
type InMemoryPendingInvoiceStore struct {
	*InMemoryStore[*pendinginvoice.PendingFinalInvoice]
}

// NewInMemoryPendingInvoiceStore creates a new in-memory commitment repository
func NewInMemoryPendingInvoiceStore() *InMemoryPendingInvoiceStore {
	return &InMemoryPendingInvoiceStore{
		InMemoryStore: NewInMemoryStore[*pendinginvoice.PendingFinalInvoice](),
	}
}

func pendingInvoiceFilterFn(ctx context.Context, pfi *pendinginvoice.PendingFinalInvoice, filter interface{}) bool {
	if pfi == nil || pfi.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.PendingInvoiceFilter)
	if !ok {
		return true
	}

	if f.ClientID != nil && pfi.ClientID != *f.ClientID {
		return false
	}
	if f.AdvanceInvoiceID != nil && pfi.AdvanceInvoiceID != *f.AdvanceInvoiceID {
		return false
	}
	if f.PendingInvoiceStatus != nil && pfi.PendingInvoiceStatus != *f.PendingInvoiceStatus {
		return false
	}

	return true
}

// pendingInvoiceSortFn orders by expected date, commitments without one last
func pendingInvoiceSortFn(i, j *pendinginvoice.PendingFinalInvoice) bool {
	switch {
	case i.ExpectedDate != nil && j.ExpectedDate != nil:
		if !i.ExpectedDate.Equal(*j.ExpectedDate) {
			return i.ExpectedDate.Before(*j.ExpectedDate)
		}
	case i.ExpectedDate != nil:
		return true
	case j.ExpectedDate != nil:
		return false
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryPendingInvoiceStore) Create(ctx context.Context, pfi *pendinginvoice.PendingFinalInvoice) error {
	if pfi == nil {
		return ierr.NewError("commitment cannot be nil").
			WithHint("Commitment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, pfi.ID, pfi)
}

func (s *InMemoryPendingInvoiceStore) Get(ctx context.Context, id string) (*pendinginvoice.PendingFinalInvoice, error) {
	pfi, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || pfi.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("commitment %s not found", id).
			WithHintf("Pending final invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return pfi, nil
}

func (s *InMemoryPendingInvoiceStore) Update(ctx context.Context, pfi *pendinginvoice.PendingFinalInvoice) error {
	if pfi == nil {
		return ierr.NewError("commitment cannot be nil").
			WithHint("Commitment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	pfi.Touch(ctx)
	if err := s.InMemoryStore.Update(ctx, pfi.ID, pfi); err != nil {
		return ierr.NewErrorf("commitment %s not found", pfi.ID).
			WithHintf("Pending final invoice %s was not found", pfi.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryPendingInvoiceStore) List(ctx context.Context, filter *types.PendingInvoiceFilter) ([]*pendinginvoice.PendingFinalInvoice, error) {
	return s.InMemoryStore.List(ctx, filter, pendingInvoiceFilterFn, pendingInvoiceSortFn)
}

func (s *InMemoryPendingInvoiceStore) Count(ctx context.Context, filter *types.PendingInvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, pendingInvoiceFilterFn)
}

func (s *InMemoryPendingInvoiceStore) GetOpenByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	return s.getByAdvance(ctx, advanceInvoiceID, true)
}

func (s *InMemoryPendingInvoiceStore) GetByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	return s.getByAdvance(ctx, advanceInvoiceID, false)
}

func (s *InMemoryPendingInvoiceStore) getByAdvance(ctx context.Context, advanceInvoiceID string, openOnly bool) (*pendinginvoice.PendingFinalInvoice, error) {
	all, err := s.InMemoryStore.List(ctx, nil, pendingInvoiceFilterFn, pendingInvoiceSortFn)
	if err != nil {
		return nil, err
	}
	for _, pfi := range all {
		if pfi.AdvanceInvoiceID != advanceInvoiceID {
			continue
		}
		if openOnly && !pfi.IsOpen() {
			continue
		}
		return pfi, nil
	}
	return nil, ierr.NewErrorf("no commitment for advance invoice %s", advanceInvoiceID).
		WithHintf("No pending final invoice found for advance invoice %s", advanceInvoiceID).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryPendingInvoiceStore) GetByFinalInvoiceID(ctx context.Context, finalInvoiceID string) (*pendinginvoice.PendingFinalInvoice, error) {
	all, err := s.InMemoryStore.List(ctx, nil, pendingInvoiceFilterFn, pendingInvoiceSortFn)
	if err != nil {
		return nil, err
	}
	for _, pfi := range all {
		if pfi.FinalInvoiceID != nil && *pfi.FinalInvoiceID == finalInvoiceID {
			return pfi, nil
		}
	}
	return nil, ierr.NewErrorf("no commitment for final invoice %s", finalInvoiceID).
		WithHintf("No pending final invoice found for final invoice %s", finalInvoiceID).
		Mark(ierr.ErrNotFound)
}
