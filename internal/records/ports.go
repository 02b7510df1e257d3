package records

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// InvoiceService is the upstream invoice/delivery/ledger system.
//
// Implementations return sentinel.ErrNotFound when the collaborator answers
// with no data and sentinel.ErrUnavailable on transport faults.
type InvoiceService interface {
	InvoiceItems(ctx context.Context, opco, invoiceNumber string) ([]InvoiceItem, error)
	DeliveryItems(ctx context.Context, opco, invoiceNumber string) ([]DeliveryItem, error)
	CreditMemoItems(ctx context.Context, opco, customerNumber string, from, to time.Time) ([]MemoItem, error)
}

// LatencyObserver records the duration of one upstream lookup.
type LatencyObserver interface {
	ObserveLookupLatency(source string, d time.Duration)
}
