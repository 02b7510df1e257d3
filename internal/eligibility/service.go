package eligibility

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sotcredit/internal/claims"
	"sotcredit/internal/eligibility/metrics"
	"sotcredit/internal/eligibility/ports"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/platform/audit"
	"sotcredit/pkg/requestcontext"
)

// Service resolves claims, runs the engine and aggregates the verdicts.
type Service struct {
	resolver ports.ClaimResolver
	engine   *Engine
	auditor  ports.AuditPort
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditor(auditor ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

// New creates a Service. The resolver is only needed by the raw-claim entry points.
func New(resolver ports.ClaimResolver, engine *Engine, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	s := &Service{
		resolver: resolver,
		engine:   engine,
		logger:   slog.Default(),
		tracer:   otel.Tracer("sotcredit/eligibility"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Adjudicate evaluates a resolved case. Output is deterministic for identical
// collaborator responses.
//
// Errors: the first hard line failure by input order (CodeDataIntegrity,
// CodeUnavailable, CodeTimeout).
func (s *Service) Adjudicate(ctx context.Context, cc claims.CaseContext) ([]InvoiceGroup, error) {
	outcome, err := s.adjudicate(ctx, uuid.NewString(), cc)
	if err != nil {
		return nil, err
	}
	return outcome.Groups, nil
}

// AdjudicateRaw resolves the claim and then adjudicates it all-or-nothing.
//
// Errors: resolution errors from the resolver plus those of Adjudicate.
func (s *Service) AdjudicateRaw(ctx context.Context, raw claims.RawClaim) (*Outcome, error) {
	adjudicationID := uuid.NewString()
	cc, err := s.resolve(ctx, adjudicationID, raw)
	if err != nil {
		return nil, err
	}
	return s.adjudicate(ctx, adjudicationID, *cc)
}

// AdjudicateBestEffort resolves the claim and adjudicates every line
// independently. Lines that fail are reported instead of aborting the case.
//
// Errors: resolution errors only.
func (s *Service) AdjudicateBestEffort(ctx context.Context, raw claims.RawClaim) (*BestEffortResult, error) {
	adjudicationID := uuid.NewString()
	cc, err := s.resolve(ctx, adjudicationID, raw)
	if err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "eligibility.AdjudicateBestEffort", adjudicationID, *cc)
	defer span.End()
	start := time.Now()

	results := s.engine.EvaluateLines(ctx, *cc)

	verdicts := make([]Verdict, 0, len(results))
	var failures []LineFailure
	for _, r := range results {
		if r.Kind == OutcomeFailed {
			failures = append(failures, LineFailure{
				Index:         r.Index,
				InvoiceNumber: r.Line.InvoiceNumber,
				ItemCode:      r.Line.ItemCode,
				Err:           r.Err,
			})
			s.logger.WarnContext(ctx, "claim line failed in best-effort adjudication",
				"request_id", requestcontext.RequestID(ctx),
				"adjudication_id", adjudicationID,
				"line", r.Index,
				"error", r.Err,
			)
			continue
		}
		verdicts = append(verdicts, *r.Verdict)
	}

	groups := Aggregate(verdicts, cc.Lines)
	s.record(ctx, adjudicationID, *cc, verdicts, start)
	span.SetAttributes(attribute.Int("failed_lines", len(failures)))

	return &BestEffortResult{
		AdjudicationID: adjudicationID,
		Groups:         groups,
		Failures:       failures,
	}, nil
}

func (s *Service) resolve(ctx context.Context, adjudicationID string, raw claims.RawClaim) (*claims.CaseContext, error) {
	if s.resolver == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "claim resolver not configured")
	}
	cc, err := s.resolver.Resolve(ctx, raw)
	if err != nil {
		s.metrics.IncrementFailure(string(dErrors.CodeOf(err)))
		s.emit(ctx, audit.Event{
			Subject:        raw.AccountIdentifier,
			Action:         string(audit.EventSotClaimUnresolved),
			Decision:       "rejected",
			Reason:         err.Error(),
			AdjudicationID: adjudicationID,
		})
		return nil, err
	}
	return cc, nil
}

func (s *Service) adjudicate(ctx context.Context, adjudicationID string, cc claims.CaseContext) (*Outcome, error) {
	ctx, span := s.startSpan(ctx, "eligibility.Adjudicate", adjudicationID, cc)
	defer span.End()
	start := time.Now()

	verdicts, err := s.engine.Evaluate(ctx, cc)
	if err != nil {
		code := dErrors.CodeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		s.metrics.IncrementFailure(string(code))
		s.metrics.ObserveAdjudicateLatency(time.Since(start))
		s.logger.ErrorContext(ctx, "adjudication aborted",
			"request_id", requestcontext.RequestID(ctx),
			"adjudication_id", adjudicationID,
			"account_id", cc.AccountID.String(),
			"code", string(code),
			"error", err,
		)
		s.emit(ctx, audit.Event{
			Subject:        cc.AccountID.String(),
			Action:         string(audit.EventSotAdjudicationError),
			Decision:       "aborted",
			Reason:         string(code),
			AdjudicationID: adjudicationID,
		})
		return nil, err
	}

	groups := Aggregate(verdicts, cc.Lines)
	s.record(ctx, adjudicationID, cc, verdicts, start)

	return &Outcome{
		AdjudicationID: adjudicationID,
		Context:        cc,
		Groups:         groups,
	}, nil
}

func (s *Service) startSpan(ctx context.Context, name, adjudicationID string, cc claims.CaseContext) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("adjudication_id", adjudicationID),
			attribute.String("account_id", cc.AccountID.String()),
			attribute.Int("lines", len(cc.Lines)),
		),
	)
}

// record emits metrics, a summary log line and the audit event for a
// completed adjudication.
func (s *Service) record(ctx context.Context, adjudicationID string, cc claims.CaseContext, verdicts []Verdict, start time.Time) {
	eligible := 0
	for _, v := range verdicts {
		s.metrics.IncrementVerdict(string(v.Status), v.Eligible)
		if v.Eligible {
			eligible++
		}
	}
	s.metrics.ObserveAdjudicateLatency(time.Since(start))

	s.logger.InfoContext(ctx, "claim adjudicated",
		"request_id", requestcontext.RequestID(ctx),
		"adjudication_id", adjudicationID,
		"account_id", cc.AccountID.String(),
		"lines", len(cc.Lines),
		"verdicts", len(verdicts),
		"eligible", eligible,
	)

	s.emit(ctx, audit.Event{
		Subject:        cc.AccountID.String(),
		Action:         string(audit.EventSotAdjudicated),
		Decision:       "completed",
		AdjudicationID: adjudicationID,
		Attributes: map[string]string{
			"lines_total":    strconv.Itoa(len(cc.Lines)),
			"lines_decided":  strconv.Itoa(len(verdicts)),
			"lines_eligible": strconv.Itoa(eligible),
		},
	})
}

// emit publishes an audit event. Audit failures are logged and never change
// the adjudication result.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Category = audit.AuditEvent(event.Action).Category()
	event.RequestID = requestcontext.RequestID(ctx)
	event.Timestamp = requestcontext.Now(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"request_id", event.RequestID,
			"action", event.Action,
			"error", err,
		)
	}
}
