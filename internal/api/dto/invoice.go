package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// InvoiceDraftResponse is the prefilled draft handed to the invoice
// authoring screen. For final drafts the commitment id rides along so the
// caller can close the commitment once the invoice is issued.
type InvoiceDraftResponse struct {
	ClientID              string            `json:"client_id"`
	InvoiceType           types.InvoiceType `json:"invoice_type"`
	Amount                decimal.Decimal   `json:"amount"`
	AdvanceAmount         *decimal.Decimal  `json:"advance_amount,omitempty"`
	TotalAmount           *decimal.Decimal  `json:"total_amount,omitempty"`
	PendingFinalInvoiceID *string           `json:"pending_final_invoice_id,omitempty"`
}

// IssueInvoiceRequest records an issued invoice with the billing subsystem:
// it creates the payment obligation and opens or closes the matching
// commitment depending on the invoice type
type IssueInvoiceRequest struct {
	ClientID    string            `json:"client_id" binding:"required"`
	DocumentID  string            `json:"document_id" binding:"required"`
	InvoiceType types.InvoiceType `json:"invoice_type" binding:"required"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	DueDate     time.Time         `json:"due_date" binding:"required"`

	// TotalAmount is required for advance invoices; the commitment for the
	// remainder is opened against it
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	// ExpectedFinalDate optionally dates the final invoice commitment
	ExpectedFinalDate *time.Time `json:"expected_final_date,omitempty"`
	// PendingFinalInvoiceID is required for final invoices; it names the
	// commitment being closed
	PendingFinalInvoiceID *string `json:"pending_final_invoice_id,omitempty"`
}

// Validate validates the issue request
func (r *IssueInvoiceRequest) Validate() error {
	if err := r.InvoiceType.Validate(); err != nil {
		return ierr.NewError("invalid invoice type").
			WithHint("Invoice type must be full, advance or final").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsZero() || r.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.InvoiceType == types.InvoiceTypeAdvance && r.TotalAmount == nil {
		return ierr.NewError("missing total amount").
			WithHint("Advance invoices must carry the total contract amount").
			Mark(ierr.ErrValidation)
	}
	if r.InvoiceType == types.InvoiceTypeFinal && r.PendingFinalInvoiceID == nil {
		return ierr.NewError("missing pending final invoice id").
			WithHint("Final invoices must name the commitment they close").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CounterpartResponse resolves the advance/final counterpart of an invoice.
// Applicable is false for full invoices and for untracked documents.
type CounterpartResponse struct {
	Applicable      bool               `json:"applicable"`
	CounterpartType *types.InvoiceType `json:"counterpart_type,omitempty"`
	DocumentID      *string            `json:"document_id,omitempty"`
	Exists          bool               `json:"exists"`
}
