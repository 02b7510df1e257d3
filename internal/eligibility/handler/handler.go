package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sotcredit/internal/claims"
	"sotcredit/internal/eligibility"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/platform/httputil"
	"sotcredit/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// HeaderAdjudicationID carries the per-run identifier. It is kept out of the
// body so identical cases produce identical bodies.
const HeaderAdjudicationID = "X-Adjudication-ID"

// Service defines the adjudication operations the handler needs.
type Service interface {
	AdjudicateRaw(ctx context.Context, raw claims.RawClaim) (*eligibility.Outcome, error)
	AdjudicateBestEffort(ctx context.Context, raw claims.RawClaim) (*eligibility.BestEffortResult, error)
}

// Handler serves the adjudication endpoint.
type Handler struct {
	service     Service
	defaultMode eligibility.Mode
	logger      *slog.Logger
}

// New creates a Handler. defaultMode applies when the request has no mode query parameter.
func New(service Service, defaultMode eligibility.Mode, logger *slog.Logger) *Handler {
	if defaultMode == "" {
		defaultMode = eligibility.ModeFailFast
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:     service,
		defaultMode: defaultMode,
		logger:      logger,
	}
}

// Register registers the adjudication routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sot/adjudicate", h.HandleAdjudicate)
}

// HandleAdjudicate adjudicates one extracted case.
//
// The default (fail_fast) response is the list of invoice groups. With
// mode=best_effort the response also lists the lines that failed.
func (h *Handler) HandleAdjudicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	mode := h.defaultMode
	if q := r.URL.Query().Get("mode"); q != "" {
		parsed, err := eligibility.ParseMode(q)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		mode = parsed
	}

	req, ok := httputil.DecodeAndPrepare[AdjudicateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	raw := req.ToRawClaim()

	if mode == eligibility.ModeBestEffort {
		result, err := h.service.AdjudicateBestEffort(ctx, raw)
		if err != nil {
			h.writeFailure(ctx, w, err, requestID)
			return
		}
		w.Header().Set(HeaderAdjudicationID, result.AdjudicationID)
		httputil.WriteJSON(w, http.StatusOK, toBestEffortResponse(result))
		return
	}

	outcome, err := h.service.AdjudicateRaw(ctx, raw)
	if err != nil {
		h.writeFailure(ctx, w, err, requestID)
		return
	}
	w.Header().Set(HeaderAdjudicationID, outcome.AdjudicationID)
	httputil.WriteJSON(w, http.StatusOK, toInvoiceResponses(outcome.Groups))
}

func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, err error, requestID string) {
	status := httputil.StatusForCode(dErrors.CodeOf(err))
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "adjudication failed",
			"request_id", requestID,
			"client_ip", requestcontext.ClientIP(ctx),
			"status", status,
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, "adjudication rejected",
			"request_id", requestID,
			"status", status,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
