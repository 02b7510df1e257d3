package handler

import (
	"sotcredit/internal/eligibility"
	dErrors "sotcredit/pkg/domain-errors"
)

// InvoiceResponse groups the credit lines of one invoice.
type InvoiceResponse struct {
	Invoice            string               `json:"invoice"`
	CreditsEligibility []CreditLineResponse `json:"credits_eligibility"`
}

// CreditLineResponse is one adjudicated line. SplitCode and DeliveryDate are
// null when the invoice line or delivery record was not found.
type CreditLineResponse struct {
	SUPC              string   `json:"SUPC"`
	SplitCode         *string  `json:"splitCode"`
	CreditsRequested  int      `json:"sot_credits_requested"`
	CreditsEligible   int      `json:"sot_credits_eligible"`
	Status            string   `json:"Status"`
	Eligibility       bool     `json:"eligibility"`
	OrderedQuantity   int      `json:"OrderedQuantity"`
	DeliveredQuantity int      `json:"DeliveredQuantity"`
	RejectedQuantity  int      `json:"rejectedQuantity"`
	PreviousCredits   int      `json:"previousCreditsAvailedQty"`
	DeliveryDate      *string  `json:"deliveryDate"`
	CandidateSUPCs    []string `json:"candidateSUPCs,omitempty"`
}

// BestEffortResponse carries the verdicts of the lines that could be decided
// and one entry per line that failed.
type BestEffortResponse struct {
	Results  []InvoiceResponse `json:"results"`
	Failures []FailureResponse `json:"failures"`
}

// FailureResponse describes a failed line by its position in CreditRequests.
type FailureResponse struct {
	Index            int               `json:"index"`
	Invoice          string            `json:"invoice"`
	SUPC             string            `json:"SUPC"`
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Details          map[string]string `json:"details,omitempty"`
}

func toInvoiceResponses(groups []eligibility.InvoiceGroup) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(groups))
	for _, g := range groups {
		lines := make([]CreditLineResponse, 0, len(g.Lines))
		for _, l := range g.Lines {
			lines = append(lines, toCreditLineResponse(l))
		}
		out = append(out, InvoiceResponse{Invoice: g.InvoiceNumber, CreditsEligibility: lines})
	}
	return out
}

func toCreditLineResponse(l eligibility.CreditLine) CreditLineResponse {
	return CreditLineResponse{
		SUPC:              l.ItemCode,
		SplitCode:         optional(l.SplitCode.String()),
		CreditsRequested:  l.RequestedQuantity,
		CreditsEligible:   l.EligibleQuantity,
		Status:            string(l.Status),
		Eligibility:       l.Eligible,
		OrderedQuantity:   l.OrderedQuantity,
		DeliveredQuantity: l.DeliveredQuantity,
		RejectedQuantity:  l.RejectedQuantity,
		PreviousCredits:   l.PreviousCredits,
		DeliveryDate:      optional(l.DeliveryDate),
		CandidateSUPCs:    l.CandidateItemCodes,
	}
}

func toBestEffortResponse(result *eligibility.BestEffortResult) BestEffortResponse {
	failures := make([]FailureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		fr := FailureResponse{
			Index:   f.Index,
			Invoice: f.InvoiceNumber,
			SUPC:    f.ItemCode,
			Error:   string(dErrors.CodeOf(f.Err)),
		}
		if de, ok := dErrors.As(f.Err); ok && de.Code != dErrors.CodeInternal {
			fr.ErrorDescription = de.Message
			fr.Details = de.Details
		}
		failures = append(failures, fr)
	}
	return BestEffortResponse{
		Results:  toInvoiceResponses(result.Groups),
		Failures: failures,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
