package ports

import (
	"context"
	"time"

	"sotcredit/internal/claims"
	"sotcredit/internal/records"
	"sotcredit/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

// RecordsPort fetches the three upstream records the engine needs per line.
// Absent records are returned as nil with a nil error.
type RecordsPort interface {
	FetchInvoiceLine(ctx context.Context, invoiceNumber, opco, itemCode string) (*records.InvoiceLineSnapshot, error)
	FetchDeliveryRecord(ctx context.Context, invoiceNumber, opco, itemCode string) (*records.DeliveryRecord, error)
	FetchCreditMemos(ctx context.Context, customerNumber, opco string, from, to time.Time) ([]records.CreditMemoLine, error)
}

// ClaimResolver turns an extracted claim into a canonical case context.
type ClaimResolver interface {
	Resolve(ctx context.Context, raw claims.RawClaim) (*claims.CaseContext, error)
}

// AuditPort defines the interface for emitting audit events.
// This matches the publisher's Emit but is defined here
// to maintain hexagonal boundaries.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
