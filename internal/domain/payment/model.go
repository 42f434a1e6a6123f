package payment

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
	"github.com/glowdesk/glowdesk/internal/types"
)

// PaymentRecord represents a payment obligation owed by a client,
// optionally linked to the invoice document that created it
type PaymentRecord struct {
	// Unique identifier for this payment obligation
	ID string `db:"id" json:"id"`
	// The client_id identifies which client owes this payment
	ClientID string `db:"client_id" json:"client_id"`
	// The document_id references the issued invoice this payment belongs to (optional)
	DocumentID *string `db:"document_id" json:"document_id,omitempty"`
	// The amount field specifies the payment value in the agency currency
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// The due_date is when this payment is expected
	DueDate time.Time `db:"due_date" json:"due_date"`
	// The paid_date is set exactly when the payment is marked paid (optional)
	PaidDate *time.Time `db:"paid_date" json:"paid_date,omitempty"`
	// The payment_status shows the current state of this obligation
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	// The payment_method records how the payment was settled (optional)
	PaymentMethod *types.PaymentMethod `db:"payment_method" json:"payment_method,omitempty"`
	// The notes field carries free-form remarks (optional)
	Notes *string `db:"notes" json:"notes,omitempty"`
	// Metadata carries integration-specific key-value pairs
	Metadata types.Metadata `db:"metadata" json:"metadata,omitempty"`

	types.BaseModel
}

// Validate validates the payment record
func (p *PaymentRecord) Validate() error {
	if p.Amount.IsZero() || p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if p.ClientID == "" {
		return ierr.NewError("invalid client id").
			WithHint("Client id is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentStatus.Validate(); err != nil {
		return ierr.NewError("invalid payment status").
			WithHint("Payment status is invalid").
			Mark(ierr.ErrValidation)
	}
	if p.PaymentMethod != nil {
		if err := p.PaymentMethod.Validate(); err != nil {
			return ierr.NewError("invalid payment method").
				WithHint("Payment method is invalid").
				Mark(ierr.ErrValidation)
		}
	}
	if p.DueDate.IsZero() {
		return ierr.NewError("invalid due date").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}

	// paid_date is set iff the record is paid
	if p.PaymentStatus == types.PaymentStatusPaid && p.PaidDate == nil {
		return ierr.NewError("paid payment without paid date").
			WithHint("A paid payment must carry its paid date").
			Mark(ierr.ErrValidation)
	}
	if p.PaymentStatus != types.PaymentStatusPaid && p.PaidDate != nil {
		return ierr.NewError("paid date on unpaid payment").
			WithHint("Only paid payments may carry a paid date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// IsDueBefore reports whether an outstanding record was due before the
// given instant. Used by the overdue reconciliation pass.
func (p *PaymentRecord) IsDueBefore(now time.Time) bool {
	return p.PaymentStatus == types.PaymentStatusPending && p.DueDate.Before(now)
}
