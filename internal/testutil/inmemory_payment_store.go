package testutil

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/domain/payment"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.PaymentRecord]
}

// NewInMemoryPaymentStore creates a new in-memory payment repository
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.PaymentRecord](),
	}
}

// paymentFilterFn implements filtering for payment record queries
func paymentFilterFn(ctx context.Context, p *payment.PaymentRecord, filter interface{}) bool {
	if p == nil {
		return false
	}

	f, ok := filter.(*types.PaymentFilter)
	if !ok {
		return true
	}

	if p.Status == types.StatusDeleted {
		return false
	}

	if f.ClientID != nil && p.ClientID != *f.ClientID {
		return false
	}

	if f.DocumentID != nil {
		if p.DocumentID == nil || *p.DocumentID != *f.DocumentID {
			return false
		}
	}

	if f.PaymentStatus != nil && string(p.PaymentStatus) != *f.PaymentStatus {
		return false
	}

	if len(f.PaymentIDs) > 0 {
		found := false
		for _, id := range f.PaymentIDs {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && p.DueDate.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && p.DueDate.After(*f.EndTime) {
			return false
		}
	}

	return true
}

// paymentSortFn sorts by due date, newest records last
func paymentSortFn(i, j *payment.PaymentRecord) bool {
	if !i.DueDate.Equal(j.DueDate) {
		return i.DueDate.Before(j.DueDate)
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.PaymentRecord) error {
	if p == nil {
		return ierr.NewError("payment record cannot be nil").
			WithHint("Payment record cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.PaymentRecord, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("payment record %s not found", id).
			WithHintf("Payment record %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPaymentStore) Update(ctx context.Context, p *payment.PaymentRecord) error {
	if p == nil {
		return ierr.NewError("payment record cannot be nil").
			WithHint("Payment record cannot be nil").
			Mark(ierr.ErrValidation)
	}
	p.Touch(ctx)
	if err := s.InMemoryStore.Update(ctx, p.ID, p); err != nil {
		return ierr.NewErrorf("payment record %s not found", p.ID).
			WithHintf("Payment record %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// Delete removes the record entirely, matching the hard delete the real
// repository performs.
func (s *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewErrorf("payment record %s not found", id).
			WithHintf("Payment record %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.PaymentRecord, error) {
	return s.InMemoryStore.List(ctx, filter, paymentFilterFn, paymentSortFn)
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, paymentFilterFn)
}
