package pendinginvoice

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/types"
)

// Repository defines the interface for commitment persistence
type Repository interface {
	Create(ctx context.Context, pfi *PendingFinalInvoice) error
	Get(ctx context.Context, id string) (*PendingFinalInvoice, error)
	Update(ctx context.Context, pfi *PendingFinalInvoice) error
	List(ctx context.Context, filter *types.PendingInvoiceFilter) ([]*PendingFinalInvoice, error)
	Count(ctx context.Context, filter *types.PendingInvoiceFilter) (int, error)

	// GetOpenByAdvanceInvoiceID returns the pending commitment opened by the
	// given advance invoice, if any
	GetOpenByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*PendingFinalInvoice, error)

	// GetByAdvanceInvoiceID returns the commitment opened by the given
	// advance invoice regardless of its status
	GetByAdvanceInvoiceID(ctx context.Context, advanceInvoiceID string) (*PendingFinalInvoice, error)

	// GetByFinalInvoiceID returns the commitment closed by the given final invoice
	GetByFinalInvoiceID(ctx context.Context, finalInvoiceID string) (*PendingFinalInvoice, error)
}
