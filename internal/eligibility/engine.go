package eligibility

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sotcredit/internal/claims"
	"sotcredit/internal/eligibility/ports"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/requestcontext"
)

// Config holds the adjudication thresholds and the per-call worker limit.
// Changing the windows changes which lines are held, not the reason text
// (see StatusReason).
type Config struct {
	// HoldWindow is the minimum time between delivery and claim.
	HoldWindow time.Duration
	// MaxClaimAgeDays is the maximum age in days of a claim relative to delivery.
	MaxClaimAgeDays int
	// Workers bounds concurrent line evaluation.
	Workers int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		HoldWindow:      24 * time.Hour,
		MaxClaimAgeDays: 14,
		Workers:         4,
	}
}

// Engine applies the eligibility rules to each line of a case.
type Engine struct {
	records ports.RecordsPort
	cfg     Config
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the engine logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine validates cfg and creates an Engine.
func NewEngine(records ports.RecordsPort, cfg Config, opts ...EngineOption) (*Engine, error) {
	if records == nil {
		return nil, errors.New("records port is required")
	}
	if cfg.HoldWindow < 0 {
		return nil, errors.New("hold window must not be negative")
	}
	if cfg.MaxClaimAgeDays <= 0 {
		return nil, errors.New("max claim age must be positive")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	e := &Engine{
		records: records,
		cfg:     cfg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate adjudicates every line and returns verdicts in input order. The
// first hard failure by input order aborts the whole case.
func (e *Engine) Evaluate(ctx context.Context, cc claims.CaseContext) ([]Verdict, error) {
	results := e.run(ctx, cc, true)
	verdicts := make([]Verdict, 0, len(results))
	for _, r := range results {
		switch r.Kind {
		case OutcomeFailed:
			return nil, r.Err
		case outcomeSkipped:
			// Only lines after a failure are skipped, so a failure was returned above.
			return nil, dErrors.New(dErrors.CodeInternal, "line skipped without preceding failure")
		default:
			verdicts = append(verdicts, *r.Verdict)
		}
	}
	return verdicts, nil
}

// EvaluateLines adjudicates every line independently and never aborts early.
func (e *Engine) EvaluateLines(ctx context.Context, cc claims.CaseContext) []LineResult {
	return e.run(ctx, cc, false)
}

func (e *Engine) run(ctx context.Context, cc claims.CaseContext, failFast bool) []LineResult {
	results := make([]LineResult, len(cc.Lines))

	// firstFailed is the lowest index that failed so far.
	var firstFailed atomic.Int64
	firstFailed.Store(math.MaxInt64)

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)

	for i, line := range cc.Lines {
		g.Go(func() error {
			if failFast && int64(i) > firstFailed.Load() {
				results[i] = LineResult{Index: i, Line: line, Kind: outcomeSkipped}
				return nil
			}

			verdict, kind, err := e.evaluateLine(ctx, cc, line)
			if err != nil {
				results[i] = LineResult{Index: i, Line: line, Kind: OutcomeFailed, Err: annotateLine(err, i)}
				lowerFailed(&firstFailed, int64(i))
				return nil
			}
			results[i] = LineResult{Index: i, Line: line, Kind: kind, Verdict: verdict}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func lowerFailed(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

func (e *Engine) evaluateLine(ctx context.Context, cc claims.CaseContext, line claims.ClaimLine) (*Verdict, OutcomeKind, error) {
	if err := ctx.Err(); err != nil {
		return nil, OutcomeFailed, dErrors.Wrap(err, dErrors.CodeTimeout, "adjudication cancelled")
	}

	key := lineKey{invoice: line.InvoiceNumber, item: line.ItemCode}

	if line.Unresolved {
		return &Verdict{
			InvoiceNumber:      key.invoice,
			ItemCode:           key.item,
			Status:             StatusItemCodeUnresolved,
			CandidateItemCodes: line.CandidateItemCodes,
		}, OutcomeSoft, nil
	}
	if key.invoice == "" {
		return softVerdict(key, "", StatusInvoiceNotFound), OutcomeSoft, nil
	}

	snapshot, err := e.records.FetchInvoiceLine(ctx, key.invoice, cc.OpcoCode, key.item)
	if err != nil {
		return nil, OutcomeFailed, err
	}
	if snapshot == nil {
		return softVerdict(key, "", StatusInvoiceNotFound), OutcomeSoft, nil
	}

	rec, err := e.records.FetchDeliveryRecord(ctx, key.invoice, cc.OpcoCode, key.item)
	if err != nil {
		return nil, OutcomeFailed, err
	}
	if rec == nil {
		return softVerdict(key, snapshot.SplitCode, StatusScannedNotFound), OutcomeSoft, nil
	}

	verdict := newVerdict(key, *snapshot, *rec)

	ruling := evaluateDelivery(e.cfg, cc.CaseCreatedAt, *rec)
	if !ruling.reconcile {
		verdict.Status = ruling.status
		return verdict, OutcomeDecided, nil
	}

	memos, err := e.records.FetchCreditMemos(ctx, cc.CustomerNumber, cc.OpcoCode, rec.ScheduledDeliveryDate, today(ctx))
	if err != nil {
		return nil, OutcomeFailed, err
	}

	rc := reconcileCredits(key.invoice, key.item, *rec, memos)
	verdict.Status = rc.status
	verdict.Eligible = rc.eligible
	verdict.PreviousCreditShipQuantity = -rc.prior

	e.logger.DebugContext(ctx, "credit reconciled",
		"request_id", requestcontext.RequestID(ctx),
		"invoice", key.invoice,
		"supc", key.item,
		"prior_credit_qty", rc.prior,
		"status", string(rc.status),
	)
	return verdict, OutcomeDecided, nil
}

func softVerdict(key lineKey, splitCode domain.SplitCode, status StatusReason) *Verdict {
	return &Verdict{
		InvoiceNumber: key.invoice,
		ItemCode:      key.item,
		SplitCode:     splitCode,
		Status:        status,
	}
}

// today is the request date at midnight UTC, the upper bound of the memo window.
func today(ctx context.Context) time.Time {
	now := requestcontext.Now(ctx)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func annotateLine(err error, index int) error {
	if de, ok := dErrors.As(err); ok {
		return de.WithDetail("line", strconv.Itoa(index))
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "line evaluation failed").
		WithDetail("line", strconv.Itoa(index))
}
