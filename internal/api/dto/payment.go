package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/domain/payment"
	"github.com/glowdesk/glowdesk/internal/types"
)

// MarkPaidRequest carries the optional settlement details recorded when a
// payment is marked paid
type MarkPaidRequest struct {
	PaymentMethod *types.PaymentMethod `json:"payment_method,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

// PaymentResponse represents a payment record response
type PaymentResponse struct {
	ID            string               `json:"id"`
	ClientID      string               `json:"client_id"`
	DocumentID    *string              `json:"document_id,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	DueDate       time.Time            `json:"due_date"`
	PaidDate      *time.Time           `json:"paid_date,omitempty"`
	PaymentStatus types.PaymentStatus  `json:"payment_status"`
	PaymentMethod *types.PaymentMethod `json:"payment_method,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	Metadata      types.Metadata       `json:"metadata,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ListPaymentsResponse represents a paginated list of payment records
type ListPaymentsResponse struct {
	Items      []*PaymentResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// NewPaymentResponse creates a new payment response from a payment record
func NewPaymentResponse(p *payment.PaymentRecord) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		DocumentID:    p.DocumentID,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		PaymentStatus: p.PaymentStatus,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		Metadata:      p.Metadata,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// BillingSummaryResponse is the per-client aggregate recomputed on every
// read; it is never cached beyond a single query cycle
type BillingSummaryResponse struct {
	ClientID          string          `json:"client_id"`
	Paid              decimal.Decimal `json:"paid"`
	Pending           decimal.Decimal `json:"pending"`
	Overdue           decimal.Decimal `json:"overdue"`
	PendingFinalTotal decimal.Decimal `json:"pending_final_total"`
	Total             decimal.Decimal `json:"total"`
}
