package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"sotcredit/internal/claims"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AdjudicateRequest is the extracted case as posted by the case-intake agent.
// Blank fields and the placeholder token are resolved by the service. At most
// 500 credit lines are accepted per case.
type AdjudicateRequest struct {
	AccountIdentifier string          `json:"CustomerNumber_AccountId" validate:"max=64"`
	OpcoCode          string          `json:"OpCoCode" validate:"max=16"`
	CustomerName      string          `json:"CustomerName" validate:"max=256"`
	CaseCreationDate  string          `json:"CaseCreationDate" validate:"max=64"`
	CreditRequests    []CreditRequest `json:"CreditRequests" validate:"required,min=1,max=500,dive"`
}

// CreditRequest is a single line of the case.
type CreditRequest struct {
	InvoiceNumber   string        `json:"InvoiceNumber" validate:"max=64"`
	SUPC            string        `json:"SUPC" validate:"max=64"`
	MissingQuantity domain.Scalar `json:"MissingQuantity"`
}

// Normalize trims whitespace from every text field.
func (r *AdjudicateRequest) Normalize() {
	if r == nil {
		return
	}
	r.AccountIdentifier = strings.TrimSpace(r.AccountIdentifier)
	r.OpcoCode = strings.TrimSpace(r.OpcoCode)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CaseCreationDate = strings.TrimSpace(r.CaseCreationDate)
	for i := range r.CreditRequests {
		line := &r.CreditRequests[i]
		line.InvoiceNumber = strings.TrimSpace(line.InvoiceNumber)
		line.SUPC = strings.TrimSpace(line.SUPC)
		line.MissingQuantity.Text = strings.TrimSpace(line.MissingQuantity.Text)
	}
}

// Validate checks field sizes and that at least one credit line was sent.
//
// Errors: CodeValidation with one detail per failing field.
func (r *AdjudicateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return dErrors.Wrap(err, dErrors.CodeInternal, "request validation failed")
	}
	out := dErrors.New(dErrors.CodeValidation, "invalid adjudication request")
	for _, fe := range verrs {
		out = out.WithDetail(fieldPath(fe.Namespace()), fe.Tag())
	}
	return out
}

// fieldPath drops the root struct name so details read "CreditRequests[0].SUPC".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

// ToRawClaim maps the request onto the resolver input.
func (r *AdjudicateRequest) ToRawClaim() claims.RawClaim {
	lines := make([]claims.RawClaimLine, 0, len(r.CreditRequests))
	for _, cr := range r.CreditRequests {
		lines = append(lines, claims.RawClaimLine{
			InvoiceNumber:   cr.InvoiceNumber,
			ItemCode:        cr.SUPC,
			MissingQuantity: cr.MissingQuantity,
		})
	}
	return claims.RawClaim{
		AccountIdentifier: r.AccountIdentifier,
		OpcoCode:          r.OpcoCode,
		CustomerName:      r.CustomerName,
		CaseCreatedAt:     r.CaseCreationDate,
		Lines:             lines,
	}
}
