package eligibility

import (
	"strings"

	"sotcredit/internal/claims"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
)

// StatusReason is the caller-facing explanation attached to every verdict.
// The texts are fixed wire literals that downstream case tooling matches on;
// the hold reasons keep their "24 hours" and "14 days" wording even when
// Config moves the windows.
type StatusReason string

const (
	StatusInvoiceNotFound    StatusReason = "invoice data not found"
	StatusScannedNotFound    StatusReason = "scanned data not found"
	StatusItemCodeUnresolved StatusReason = "item code unresolved"
	StatusHoldTooEarly       StatusReason = "On Hold - Case created within 24 hours of delivery"
	StatusHoldTooLate        StatusReason = "On Hold - Case created after 14 days of delivery"
	StatusFullyLoaded        StatusReason = "Not eligible - order fully loaded on truck"
	StatusNoPriorCredits     StatusReason = "Eligible for credit as no previous processed credits found"
	StatusExactPriorCredit   StatusReason = "Credits not eligible as exact quantities match with previous processed credit"
	StatusPartialPriorCredit StatusReason = "Lesser credits eligible as partial credits are already processed"
	StatusEligible           StatusReason = "Eligible for credit"
)

// Verdict is the adjudication of one claim line.
type Verdict struct {
	InvoiceNumber string
	ItemCode      string
	// SplitCode is empty when the invoice line was not found.
	SplitCode domain.SplitCode
	Eligible  bool
	Status    StatusReason

	OrderedQuantity   int
	DeliveredQuantity int
	RejectedQuantity  int
	// PreviousCreditShipQuantity is the negated sum of prior credited quantities.
	PreviousCreditShipQuantity int
	// DeliveryDate is "YYYY-MM-DD", empty when no delivery record was found.
	DeliveryDate string

	CandidateItemCodes []string
}

// PriorCreditQuantity is the summed quantity already credited for this line.
func (v Verdict) PriorCreditQuantity() int {
	return -v.PreviousCreditShipQuantity
}

// EligibleQuantity is ordered - delivered - rejected + prior credits.
func (v Verdict) EligibleQuantity() int {
	return v.OrderedQuantity - v.DeliveredQuantity - v.RejectedQuantity + v.PriorCreditQuantity()
}

// OutcomeKind classifies a per-line result.
type OutcomeKind string

const (
	// OutcomeDecided means every rule ran to a verdict.
	OutcomeDecided OutcomeKind = "decided"
	// OutcomeSoft means a record was absent or the item code unresolved.
	OutcomeSoft OutcomeKind = "soft"
	// OutcomeFailed means a hard error stopped the line.
	OutcomeFailed OutcomeKind = "failed"

	outcomeSkipped OutcomeKind = "skipped"
)

// LineResult is the outcome for one claim line. Verdict is set unless Kind is
// OutcomeFailed, in which case Err is set.
type LineResult struct {
	Index   int
	Line    claims.ClaimLine
	Kind    OutcomeKind
	Verdict *Verdict
	Err     error
}

// CreditLine is the caller-facing view of a verdict.
type CreditLine struct {
	ItemCode           string
	SplitCode          domain.SplitCode
	RequestedQuantity  int
	EligibleQuantity   int
	Status             StatusReason
	Eligible           bool
	OrderedQuantity    int
	DeliveredQuantity  int
	RejectedQuantity   int
	PreviousCredits    int
	DeliveryDate       string
	CandidateItemCodes []string
}

// InvoiceGroup holds the credit lines for one invoice, in claim order.
type InvoiceGroup struct {
	InvoiceNumber string
	Lines         []CreditLine
}

// LineFailure describes a line that could not be adjudicated in best-effort mode.
type LineFailure struct {
	Index         int
	InvoiceNumber string
	ItemCode      string
	Err           error
}

// BestEffortResult is the partial outcome of a best-effort adjudication.
type BestEffortResult struct {
	AdjudicationID string
	Groups         []InvoiceGroup
	Failures       []LineFailure
}

// Outcome is the result of an all-or-nothing adjudication.
type Outcome struct {
	AdjudicationID string
	Context        claims.CaseContext
	Groups         []InvoiceGroup
}

// Mode selects how hard line failures are handled.
type Mode string

const (
	// ModeFailFast aborts the whole case on the first hard line failure.
	ModeFailFast Mode = "fail_fast"
	// ModeBestEffort reports failed lines next to the verdicts of the others.
	ModeBestEffort Mode = "best_effort"
)

// ParseMode accepts the two mode names. Blank selects ModeFailFast.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFailFast:
		return ModeFailFast, nil
	case ModeBestEffort:
		return ModeBestEffort, nil
	default:
		return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown adjudication mode %q", s)
	}
}
