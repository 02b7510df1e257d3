package claims

import (
	"time"

	"sotcredit/pkg/domain"
)

// RawClaim is a claim as extracted from a customer case, before resolution.
// Any string field may be blank or domain.Placeholder.
type RawClaim struct {
	AccountIdentifier string
	OpcoCode          string
	CustomerName      string
	CaseCreatedAt     string
	Lines             []RawClaimLine
}

// RawClaimLine is one requested credit as extracted from the case.
type RawClaimLine struct {
	InvoiceNumber   string
	ItemCode        string
	MissingQuantity domain.Scalar
}

// ClaimLine is a claim line after resolution. Duplicate lines are kept and
// adjudicated independently.
type ClaimLine struct {
	InvoiceNumber   string
	ItemCode        string
	MissingQuantity domain.Scalar

	// CandidateItemCodes is set when the item code was backfilled from the invoice.
	CandidateItemCodes []string
	// Unresolved is set when no single item code could be chosen.
	Unresolved bool
}

// RequestedQuantity is the customer-reported missing quantity, 0 when absent
// or not plain integer text ("3.0" counts as 0).
func (l ClaimLine) RequestedQuantity() int {
	return l.MissingQuantity.StrictIntOr(0)
}

// CaseContext is the canonical, fully resolved claim.
// Invariant: AccountID == OpcoCode + "-" + CustomerNumber.
type CaseContext struct {
	AccountID      domain.AccountID
	OpcoCode       string
	CustomerNumber string
	CustomerName   string
	CaseCreatedAt  time.Time
	Lines          []ClaimLine
}

// NewCaseContext builds a context from a canonical account id.
func NewCaseContext(accountID domain.AccountID, customerName string, createdAt time.Time, lines []ClaimLine) CaseContext {
	return CaseContext{
		AccountID:      accountID,
		OpcoCode:       accountID.Opco(),
		CustomerNumber: accountID.CustomerNumber(),
		CustomerName:   customerName,
		CaseCreatedAt:  createdAt,
		Lines:          lines,
	}
}
