package ports

import "context"

//go:generate mockgen -source=crm.go -destination=../mocks/mocks.go -package=mocks

// CRMPort is the customer-relationship system used to resolve who a claim is for.
// Lookups return sentinel.ErrNotFound when the CRM answers with no records and
// sentinel.ErrUnavailable when it cannot be reached.
type CRMPort interface {
	// AccountByInvoice returns the canonical account id that owns an invoice.
	AccountByInvoice(ctx context.Context, invoiceNumber string) (string, error)

	// OpcosByAccountNumber lists every opco holding a customer with this number.
	OpcosByAccountNumber(ctx context.Context, accountNumber string) ([]string, error)

	AccountExists(ctx context.Context, accountID string) (bool, error)
	OpcoExists(ctx context.Context, opco string) (bool, error)

	CustomerName(ctx context.Context, accountID string) (string, error)

	// InvoiceItemCodes lists the SUPCs on an invoice in CRM order, duplicates included.
	InvoiceItemCodes(ctx context.Context, invoiceNumber string) ([]string, error)
}
