package payment

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/types"
)

// Repository defines the interface for payment record persistence
type Repository interface {
	Create(ctx context.Context, payment *PaymentRecord) error
	Get(ctx context.Context, id string) (*PaymentRecord, error)
	Update(ctx context.Context, payment *PaymentRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.PaymentFilter) ([]*PaymentRecord, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
}
