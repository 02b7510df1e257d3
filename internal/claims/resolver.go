package claims

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"sotcredit/internal/claims/ports"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/platform/sentinel"
	pkgstrings "sotcredit/pkg/platform/strings"
	"sotcredit/pkg/requestcontext"
)

// Resolver turns a RawClaim into a CaseContext, consulting the CRM to fill in
// whatever the customer left out.
type Resolver struct {
	crm    ports.CRMPort
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver backed by the given CRM.
func NewResolver(crm ports.CRMPort, opts ...Option) (*Resolver, error) {
	if crm == nil {
		return nil, errors.New("crm port is required")
	}
	r := &Resolver{
		crm:    crm,
		logger: slog.Default(),
		tracer: otel.Tracer("sotcredit/claims"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve establishes the account, opco, customer name, creation time and item
// codes for a claim.
//
// Errors:
//   - CodeResolution when no usable account id exists, the opco is ambiguous,
//     or the CRM rejects the account/opco pair
//   - CodeUnavailable when account/opco validation cannot reach the CRM
//   - CodeValidation when the creation timestamp is malformed
func (r *Resolver) Resolve(ctx context.Context, raw RawClaim) (*CaseContext, error) {
	ctx, span := r.tracer.Start(ctx, "claims.Resolve")
	defer span.End()

	createdAt, err := r.caseCreatedAt(ctx, raw.CaseCreatedAt)
	if err != nil {
		return nil, err
	}

	firstInvoice := firstInvoiceNumber(raw.Lines)

	accountID, err := r.resolveAccount(ctx, raw, firstInvoice)
	if err != nil {
		return nil, err
	}
	if err := r.validate(ctx, accountID); err != nil {
		return nil, err
	}

	customerName := strings.TrimSpace(raw.CustomerName)
	if domain.IsBlank(customerName) {
		customerName = r.lookupCustomerName(ctx, accountID)
	}

	lines := r.resolveLines(ctx, raw.Lines, firstInvoice)

	cc := NewCaseContext(accountID, customerName, createdAt, lines)
	return &cc, nil
}

func (r *Resolver) caseCreatedAt(ctx context.Context, raw string) (time.Time, error) {
	if domain.IsBlank(raw) {
		now := requestcontext.Now(ctx)
		return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC), nil
	}
	return ParseCaseTimestamp(raw)
}

func (r *Resolver) resolveAccount(ctx context.Context, raw RawClaim, firstInvoice string) (domain.AccountID, error) {
	opco := strings.TrimSpace(raw.OpcoCode)
	if domain.IsBlank(opco) {
		opco = ""
	}

	var bareNumber string
	if ref, ok := domain.ParseAccountRef(raw.AccountIdentifier); ok {
		switch {
		case ref.Complete():
			return ref.AccountID(), nil
		case opco != "":
			return domain.AccountRef{Opco: opco, Number: ref.Number}.AccountID(), nil
		default:
			bareNumber = ref.Number
		}
	}

	if bareNumber == "" && firstInvoice != "" {
		ref, found := r.lookupAccountByInvoice(ctx, firstInvoice)
		if found {
			if ref.Complete() {
				return ref.AccountID(), nil
			}
			bareNumber = ref.Number
		}
	}

	if bareNumber != "" {
		opcos, err := r.lookupOpcos(ctx, bareNumber)
		if err != nil {
			return "", err
		}
		if len(opcos) == 1 {
			return domain.AccountRef{Opco: opcos[0], Number: bareNumber}.AccountID(), nil
		}
	}

	return "", dErrors.New(dErrors.CodeResolution, "account id could not be resolved from the claim")
}

func (r *Resolver) lookupAccountByInvoice(ctx context.Context, invoiceNumber string) (domain.AccountRef, bool) {
	accountID, err := r.crm.AccountByInvoice(ctx, invoiceNumber)
	if err != nil {
		r.degraded(ctx, "account by invoice", err, "invoice", invoiceNumber)
		return domain.AccountRef{}, false
	}
	return domain.ParseAccountRef(accountID)
}

// lookupOpcos returns the single matching opco, none, or an ambiguity error.
func (r *Resolver) lookupOpcos(ctx context.Context, accountNumber string) ([]string, error) {
	opcos, err := r.crm.OpcosByAccountNumber(ctx, accountNumber)
	if err != nil {
		r.degraded(ctx, "opco by account number", err, "account_number", accountNumber)
		return nil, nil
	}
	opcos = pkgstrings.Distinct(opcos, domain.IsBlank)
	if len(opcos) > 1 {
		return nil, dErrors.New(dErrors.CodeResolution, "multiple opcos found for account number").
			WithDetail("account_number", accountNumber).
			WithDetail("candidate_opcos", strings.Join(opcos, ","))
	}
	return opcos, nil
}

func (r *Resolver) validate(ctx context.Context, accountID domain.AccountID) error {
	accountOK, err := r.crm.AccountExists(ctx, accountID.String())
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "account validation unavailable")
	}
	opcoOK, err := r.crm.OpcoExists(ctx, accountID.Opco())
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "opco validation unavailable")
	}
	if !accountOK || !opcoOK {
		return dErrors.New(dErrors.CodeResolution, "given accountId/opco is invalid").
			WithDetail("account_id", accountID.String())
	}
	return nil
}

func (r *Resolver) lookupCustomerName(ctx context.Context, accountID domain.AccountID) string {
	name, err := r.crm.CustomerName(ctx, accountID.String())
	if err != nil {
		r.degraded(ctx, "customer name", err, "account_id", accountID.String())
		return ""
	}
	return name
}

func (r *Resolver) resolveLines(ctx context.Context, raw []RawClaimLine, firstInvoice string) []ClaimLine {
	candidatesByInvoice := make(map[string][]string)
	lines := make([]ClaimLine, 0, len(raw))

	for _, rl := range raw {
		line := ClaimLine{
			InvoiceNumber:   blankToEmpty(rl.InvoiceNumber),
			ItemCode:        blankToEmpty(rl.ItemCode),
			MissingQuantity: rl.MissingQuantity,
		}
		if line.ItemCode == "" {
			invoice := line.InvoiceNumber
			if invoice == "" {
				invoice = firstInvoice
			}
			candidates, seen := candidatesByInvoice[invoice]
			if !seen && invoice != "" {
				candidates = r.lookupItemCodes(ctx, invoice)
				candidatesByInvoice[invoice] = candidates
			}
			line.CandidateItemCodes = candidates
			if len(candidates) == 1 {
				line.ItemCode = candidates[0]
			} else {
				line.Unresolved = true
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Resolver) lookupItemCodes(ctx context.Context, invoiceNumber string) []string {
	codes, err := r.crm.InvoiceItemCodes(ctx, invoiceNumber)
	if err != nil {
		r.degraded(ctx, "invoice item codes", err, "invoice", invoiceNumber)
		return nil
	}
	return pkgstrings.Distinct(codes, domain.IsBlank)
}

// degraded logs an optional lookup that fell back to "absent". Not-found
// answers are expected and are not logged.
func (r *Resolver) degraded(ctx context.Context, lookup string, err error, args ...any) {
	if errors.Is(err, sentinel.ErrNotFound) {
		return
	}
	attrs := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"lookup", lookup,
		"error", err,
	}, args...)
	r.logger.WarnContext(ctx, "optional crm lookup degraded to absent", attrs...)
}

func firstInvoiceNumber(lines []RawClaimLine) string {
	for _, l := range lines {
		if inv := blankToEmpty(l.InvoiceNumber); inv != "" {
			return inv
		}
	}
	return ""
}

func blankToEmpty(s string) string {
	if domain.IsBlank(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
