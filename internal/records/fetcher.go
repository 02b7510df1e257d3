package records

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/platform/sentinel"
	"sotcredit/pkg/requestcontext"
)

const tracerName = "sotcredit/records"

// Fetcher builds validated records from the upstream invoice service.
// Absent records are returned as nil with a nil error.
type Fetcher struct {
	source  InvoiceService
	logger  *slog.Logger
	latency LatencyObserver
	tracer  trace.Tracer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithLatencyObserver records per-lookup latency.
func WithLatencyObserver(o LatencyObserver) Option {
	return func(f *Fetcher) {
		f.latency = o
	}
}

// NewFetcher creates a Fetcher over the given invoice service.
func NewFetcher(source InvoiceService, opts ...Option) (*Fetcher, error) {
	if source == nil {
		return nil, errors.New("invoice service is required")
	}
	f := &Fetcher{
		source: source,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchInvoiceLine returns the first invoice line for itemCode.
//
// Errors: CodeUnavailable when the invoice service cannot be reached.
func (f *Fetcher) FetchInvoiceLine(ctx context.Context, invoiceNumber, opco, itemCode string) (*InvoiceLineSnapshot, error) {
	ctx, span := f.startSpan(ctx, "records.FetchInvoiceLine", invoiceNumber, itemCode)
	defer span.End()

	start := time.Now()
	items, err := f.source.InvoiceItems(ctx, opco, invoiceNumber)
	f.observe("invoice", start)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, f.fail(span, requiredLookupError(err, "invoice service unavailable", invoiceNumber, itemCode))
	}

	for _, item := range items {
		if item.ItemNumber == itemCode {
			snapshot := NewInvoiceLineSnapshot(item)
			return &snapshot, nil
		}
	}
	return nil, nil
}

// FetchDeliveryRecord returns the scanned delivery for itemCode.
//
// Errors: CodeUnavailable when the invoice service cannot be reached,
// CodeDataIntegrity when the scanned item is malformed.
func (f *Fetcher) FetchDeliveryRecord(ctx context.Context, invoiceNumber, opco, itemCode string) (*DeliveryRecord, error) {
	ctx, span := f.startSpan(ctx, "records.FetchDeliveryRecord", invoiceNumber, itemCode)
	defer span.End()

	start := time.Now()
	items, err := f.source.DeliveryItems(ctx, opco, invoiceNumber)
	f.observe("delivery", start)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, f.fail(span, requiredLookupError(err, "delivery service unavailable", invoiceNumber, itemCode))
	}

	for _, item := range items {
		if item.ItemNumber != itemCode {
			continue
		}
		record, err := NewDeliveryRecord(item)
		if err != nil {
			var de *dErrors.Error
			if errors.As(err, &de) {
				err = de.WithDetail("invoice", invoiceNumber)
			}
			return nil, f.fail(span, err)
		}
		return record, nil
	}
	return nil, nil
}

// FetchCreditMemos returns the customer's ledger entries in [from, to].
// An unreachable ledger degrades to an empty history.
//
// Errors: CodeDataIntegrity for a malformed ledger line, CodeTimeout when ctx ends.
func (f *Fetcher) FetchCreditMemos(ctx context.Context, customerNumber, opco string, from, to time.Time) ([]CreditMemoLine, error) {
	ctx, span := f.tracer.Start(ctx, "records.FetchCreditMemos",
		trace.WithAttributes(
			attribute.String("customer", customerNumber),
			attribute.String("opco", opco),
		),
	)
	defer span.End()

	start := time.Now()
	items, err := f.source.CreditMemoItems(ctx, opco, customerNumber, from, to)
	f.observe("credit_memos", start)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, f.fail(span, dErrors.Wrap(ctxErr, dErrors.CodeTimeout, "credit memo lookup cancelled"))
		}
		f.logger.WarnContext(ctx, "credit memo lookup degraded to empty history",
			"request_id", requestcontext.RequestID(ctx),
			"customer", customerNumber,
			"opco", opco,
			"error", err,
		)
		return nil, nil
	}

	lines := make([]CreditMemoLine, 0, len(items))
	for _, item := range items {
		line, err := NewCreditMemoLine(item)
		if err != nil {
			return nil, f.fail(span, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (f *Fetcher) startSpan(ctx context.Context, name, invoiceNumber, itemCode string) (context.Context, trace.Span) {
	return f.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("invoice", invoiceNumber),
			attribute.String("supc", itemCode),
		),
	)
}

func (f *Fetcher) observe(source string, start time.Time) {
	if f.latency != nil {
		f.latency.ObserveLookupLatency(source, time.Since(start))
	}
}

func (f *Fetcher) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func requiredLookupError(err error, msg, invoiceNumber, itemCode string) error {
	code := dErrors.CodeUnavailable
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		code = dErrors.CodeTimeout
	}
	return dErrors.Wrap(err, code, msg).
		WithDetail("invoice", invoiceNumber).
		WithDetail("supc", itemCode)
}
