package document

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/types"
)

// Repository defines read access to documents. The billing subsystem never
// writes documents; issuance happens in the document subsystem.
type Repository interface {
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)

	// GetLatestContract returns the most recently created contract document
	// for a client, or a not found error when the client has none
	GetLatestContract(ctx context.Context, clientID string) (*Document, error)
}
