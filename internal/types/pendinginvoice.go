package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PendingInvoiceStatus represents the state of a pending-final-invoice commitment
type PendingInvoiceStatus string

const (
	// PendingInvoiceStatusPending indicates the final invoice is still owed
	PendingInvoiceStatusPending PendingInvoiceStatus = "PENDING"
	// PendingInvoiceStatusCompleted indicates the final invoice has been issued
	PendingInvoiceStatusCompleted PendingInvoiceStatus = "COMPLETED"
	// PendingInvoiceStatusCancelled indicates the commitment was voided
	PendingInvoiceStatusCancelled PendingInvoiceStatus = "CANCELLED"
)

func (s PendingInvoiceStatus) String() string {
	return string(s)
}

func (s PendingInvoiceStatus) Validate() error {
	allowed := []PendingInvoiceStatus{
		PendingInvoiceStatusPending,
		PendingInvoiceStatusCompleted,
		PendingInvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid pending invoice status: %s", s)
	}
	return nil
}

// PendingInvoiceFilter represents the filter for listing commitments
type PendingInvoiceFilter struct {
	*QueryFilter

	ClientID             *string               `json:"client_id,omitempty" form:"client_id"`
	AdvanceInvoiceID     *string               `json:"advance_invoice_id,omitempty" form:"advance_invoice_id"`
	PendingInvoiceStatus *PendingInvoiceStatus `json:"pending_invoice_status,omitempty" form:"pending_invoice_status"`
}

// Validate validates the pending invoice filter
func (f *PendingInvoiceFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}

	if f.PendingInvoiceStatus != nil {
		if err := f.PendingInvoiceStatus.Validate(); err != nil {
			return err
		}
	}

	return nil
}
