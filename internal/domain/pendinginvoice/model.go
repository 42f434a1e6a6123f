package pendinginvoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// PendingFinalInvoice represents an open commitment: an advance invoice was
// issued and a final invoice for the remainder is still owed
type PendingFinalInvoice struct {
	// Unique identifier for this commitment
	ID string `db:"id" json:"id"`
	// The client_id identifies which client the commitment belongs to
	ClientID string `db:"client_id" json:"client_id"`
	// The advance_invoice_id references the advance invoice document that
	// opened this commitment
	AdvanceInvoiceID string `db:"advance_invoice_id" json:"advance_invoice_id"`
	// The final_invoice_id references the final invoice document, once issued (optional)
	FinalInvoiceID *string `db:"final_invoice_id" json:"final_invoice_id,omitempty"`
	// The advance_amount is what the advance invoice billed
	AdvanceAmount decimal.Decimal `db:"advance_amount" json:"advance_amount"`
	// The total_amount is the full contract amount being billed in two phases
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	// The remaining_amount is total minus advance, fixed at creation. It is
	// the originally committed balance, never re-derived from partial payments.
	RemainingAmount decimal.Decimal `db:"remaining_amount" json:"remaining_amount"`
	// The expected_date is when the final invoice is anticipated (optional)
	ExpectedDate *time.Time `db:"expected_date" json:"expected_date,omitempty"`
	// The pending_invoice_status shows where the commitment is in its lifecycle
	PendingInvoiceStatus types.PendingInvoiceStatus `db:"pending_invoice_status" json:"pending_invoice_status"`

	types.BaseModel
}

// Validate validates the commitment
func (p *PendingFinalInvoice) Validate() error {
	if p.ClientID == "" {
		return ierr.NewError("invalid client id").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}
	if p.AdvanceInvoiceID == "" {
		return ierr.NewError("invalid advance invoice id").
			WithHint("Advance invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if p.AdvanceAmount.IsZero() || p.AdvanceAmount.IsNegative() {
		return ierr.NewError("invalid advance amount").
			WithHint("Advance amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if p.TotalAmount.IsZero() || p.TotalAmount.IsNegative() {
		return ierr.NewError("invalid total amount").
			WithHint("Total amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if p.AdvanceAmount.GreaterThan(p.TotalAmount) {
		return ierr.NewError("advance amount exceeds total amount").
			WithHint("Advance amount cannot exceed the total amount").
			WithReportableDetails(map[string]any{
				"advance_amount": p.AdvanceAmount.String(),
				"total_amount":   p.TotalAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if !p.RemainingAmount.Equal(p.TotalAmount.Sub(p.AdvanceAmount)) {
		return ierr.NewError("inconsistent remaining amount").
			WithHint("Remaining amount must equal total minus advance").
			Mark(ierr.ErrValidation)
	}
	if err := p.PendingInvoiceStatus.Validate(); err != nil {
		return ierr.NewError("invalid pending invoice status").
			WithHint("Pending invoice status is invalid").
			Mark(ierr.ErrValidation)
	}

	// completed exactly when the final invoice is set
	if p.PendingInvoiceStatus == types.PendingInvoiceStatusCompleted && p.FinalInvoiceID == nil {
		return ierr.NewError("completed commitment without final invoice").
			WithHint("A completed commitment must reference its final invoice").
			Mark(ierr.ErrValidation)
	}
	if p.PendingInvoiceStatus == types.PendingInvoiceStatusPending && p.FinalInvoiceID != nil {
		return ierr.NewError("pending commitment with final invoice").
			WithHint("A pending commitment cannot reference a final invoice").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// IsOpen reports whether the final invoice is still owed
func (p *PendingFinalInvoice) IsOpen() bool {
	return p.PendingInvoiceStatus == types.PendingInvoiceStatusPending
}
