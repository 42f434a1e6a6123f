package types

import (
	"time"
)

// BillingEventName identifies what changed in a client's billing state
type BillingEventName string

const (
	BillingEventPaymentPaid          BillingEventName = "payment.marked_paid"
	BillingEventPaymentUnpaid        BillingEventName = "payment.marked_unpaid"
	BillingEventPaymentDeleted       BillingEventName = "payment.deleted"
	BillingEventPaymentOverdue       BillingEventName = "payment.overdue"
	BillingEventInvoiceIssued        BillingEventName = "invoice.issued"
	BillingEventPendingInvoiceOpened BillingEventName = "pending_invoice.opened"
	BillingEventPendingInvoiceClosed BillingEventName = "pending_invoice.closed"
)

// BillingEvent is the change notification emitted after every billing
// mutation. Subscribers re-run the client summary rather than patching
// aggregates incrementally.
type BillingEvent struct {
	ID        string           `json:"id"`
	EventName BillingEventName `json:"event_name"`
	ClientID  string           `json:"client_id"`
	EntityID  string           `json:"entity_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewBillingEvent creates a change notification for a client
func NewBillingEvent(name BillingEventName, clientID, entityID string) *BillingEvent {
	return &BillingEvent{
		ID:        GenerateUUIDWithPrefix(UUID_PREFIX_BILLING_EVENT),
		EventName: name,
		ClientID:  clientID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
