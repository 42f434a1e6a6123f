package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentStatus represents the status of a payment obligation
type PaymentStatus string

const (
	// PaymentStatusPending indicates the payment is due but not yet received
	PaymentStatusPending PaymentStatus = "PENDING"
	// PaymentStatusPaid indicates the payment has been received
	PaymentStatusPaid PaymentStatus = "PAID"
	// PaymentStatusOverdue indicates a pending payment whose due date has
	// passed. Overdue is persisted by the reconciliation pass rather than
	// derived at read time, so every read path reports the same status.
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
	// PaymentStatusCancelled indicates the obligation was voided
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusPaid,
		PaymentStatusOverdue,
		PaymentStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid payment status: %s", s)
	}
	return nil
}

// IsOutstanding reports whether the obligation still awaits payment
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusOverdue
}

// PaymentMethod represents how a payment was (or will be) settled
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCash         PaymentMethod = "CASH"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodBankTransfer,
		PaymentMethodCard,
		PaymentMethodCash,
	}
	if !lo.Contains(allowed, m) {
		return fmt.Errorf("invalid payment method: %s", m)
	}
	return nil
}

// PaymentFilter represents the filter for listing payment records
type PaymentFilter struct {
	*QueryFilter
	*TimeRangeFilter

	PaymentIDs    []string `json:"payment_ids,omitempty" form:"payment_ids"`
	ClientID      *string  `json:"client_id,omitempty" form:"client_id"`
	DocumentID    *string  `json:"document_id,omitempty" form:"document_id"`
	PaymentStatus *string  `json:"payment_status,omitempty" form:"payment_status"`
}

// NewNoLimitPaymentFilter creates a new payment filter with no limit
func NewNoLimitPaymentFilter() *PaymentFilter {
	return &PaymentFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the payment filter
func (f *PaymentFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}

	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}

	if f.PaymentStatus != nil {
		if err := PaymentStatus(*f.PaymentStatus).Validate(); err != nil {
			return err
		}
	}

	return nil
}

// GetLimit implements BaseFilter
func (f *PaymentFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter
func (f *PaymentFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited implements BaseFilter
func (f *PaymentFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
