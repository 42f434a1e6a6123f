package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk/internal/domain/pendinginvoice"
	"github.com/glowdesk/glowdesk/internal/types"
)

// PendingInvoiceResponse represents a pending-final-invoice commitment
type PendingInvoiceResponse struct {
	ID                   string                     `json:"id"`
	ClientID             string                     `json:"client_id"`
	AdvanceInvoiceID     string                     `json:"advance_invoice_id"`
	FinalInvoiceID       *string                    `json:"final_invoice_id,omitempty"`
	AdvanceAmount        decimal.Decimal            `json:"advance_amount"`
	TotalAmount          decimal.Decimal            `json:"total_amount"`
	RemainingAmount      decimal.Decimal            `json:"remaining_amount"`
	ExpectedDate         *time.Time                 `json:"expected_date,omitempty"`
	PendingInvoiceStatus types.PendingInvoiceStatus `json:"pending_invoice_status"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// ListPendingInvoicesResponse represents a list of commitments
type ListPendingInvoicesResponse struct {
	Items      []*PendingInvoiceResponse `json:"items"`
	Pagination types.PaginationResponse  `json:"pagination"`
}

// NewPendingInvoiceResponse creates a response from a commitment
func NewPendingInvoiceResponse(pfi *pendinginvoice.PendingFinalInvoice) *PendingInvoiceResponse {
	return &PendingInvoiceResponse{
		ID:                   pfi.ID,
		ClientID:             pfi.ClientID,
		AdvanceInvoiceID:     pfi.AdvanceInvoiceID,
		FinalInvoiceID:       pfi.FinalInvoiceID,
		AdvanceAmount:        pfi.AdvanceAmount,
		TotalAmount:          pfi.TotalAmount,
		RemainingAmount:      pfi.RemainingAmount,
		ExpectedDate:         pfi.ExpectedDate,
		PendingInvoiceStatus: pfi.PendingInvoiceStatus,
		CreatedAt:            pfi.CreatedAt,
		UpdatedAt:            pfi.UpdatedAt,
	}
}
