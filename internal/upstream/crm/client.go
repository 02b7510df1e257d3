// Package crm adapts the customer-relationship system to claims/ports.CRMPort.
package crm

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"sotcredit/internal/claims/ports"
	"sotcredit/internal/upstream/gateway"
	"sotcredit/pkg/domain"
	"sotcredit/pkg/platform/sentinel"
)

const sobjectsPath = "/system/customer-relationship-management/v3/sobjects/"

// Client implements ports.CRMPort over the gateway's sobject query endpoint.
type Client struct {
	gw gateway.Getter
}

var _ ports.CRMPort = (*Client)(nil)

// New creates a Client over an authenticated gateway.
func New(gw gateway.Getter) (*Client, error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}
	return &Client{gw: gw}, nil
}

type queryResult struct {
	TotalSize int      `json:"totalSize"`
	Records   []record `json:"records"`
}

// record carries the union of the fields selected by the lookups below.
type record struct {
	AccountID domain.Scalar `json:"Account_ID__c"`
	Account   domain.Scalar `json:"Account__c"`
	Opco      domain.Scalar `json:"OpCo__c"`
	OpcoID    domain.Scalar `json:"OpCo_ID__c"`
	Name      domain.Scalar `json:"Name"`
	SUPC      domain.Scalar `json:"SUPC__c"`
}

// AccountByInvoice returns the account that owns invoiceNumber.
func (c *Client) AccountByInvoice(ctx context.Context, invoiceNumber string) (string, error) {
	recs, err := c.query(ctx, "Invoice__c", "Account__c", eq("Invoice_Number__c", invoiceNumber))
	if err != nil {
		return "", err
	}
	return firstNonBlank(recs, func(r record) string { return r.Account.Text })
}

// OpcosByAccountNumber lists the opco of every account with this number.
func (c *Client) OpcosByAccountNumber(ctx context.Context, accountNumber string) ([]string, error) {
	recs, err := c.query(ctx, "Account", "OpCo__c, Name", eq("Account_Number__c", accountNumber))
	if err != nil {
		return nil, err
	}
	opcos := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Opco.Text != "" {
			opcos = append(opcos, r.Opco.Text)
		}
	}
	if len(opcos) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return opcos, nil
}

// AccountExists reports whether the CRM knows the canonical account id.
func (c *Client) AccountExists(ctx context.Context, accountID string) (bool, error) {
	recs, err := c.query(ctx, "Account", "Account_ID__c", eq("Account_ID__c", accountID))
	return exists(recs, err, func(r record) bool { return r.AccountID.Text == accountID })
}

// OpcoExists reports whether the CRM knows the operating company.
func (c *Client) OpcoExists(ctx context.Context, opco string) (bool, error) {
	recs, err := c.query(ctx, "OpCo__c", "OpCo_ID__c", eq("OpCo_ID__c", opco))
	return exists(recs, err, func(r record) bool { return r.OpcoID.Text == opco })
}

// CustomerName returns the account's display name.
func (c *Client) CustomerName(ctx context.Context, accountID string) (string, error) {
	recs, err := c.query(ctx, "Account", "Name", eq("Account_ID__c", accountID))
	if err != nil {
		return "", err
	}
	return firstNonBlank(recs, func(r record) string { return r.Name.Text })
}

// InvoiceItemCodes lists the SUPCs on an invoice in CRM order.
func (c *Client) InvoiceItemCodes(ctx context.Context, invoiceNumber string) ([]string, error) {
	recs, err := c.query(ctx, "Invoice_Line_Item__c", "SUPC__c", eq("Invoice__c.Invoice_Number__c", invoiceNumber))
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(recs))
	for _, r := range recs {
		codes = append(codes, r.SUPC.Text)
	}
	return codes, nil
}

// query runs a filtered sobject query. No records is sentinel.ErrNotFound.
func (c *Client) query(ctx context.Context, object, fields, filter string) ([]record, error) {
	params := url.Values{
		"fields":  {fields},
		"filters": {filter},
	}
	var resp queryResult
	if err := c.gw.GetJSON(ctx, sobjectsPath+object+"/query", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return resp.Records, nil
}

func exists(recs []record, err error, match func(record) bool) (bool, error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return match(recs[0]), nil
}

func firstNonBlank(recs []record, field func(record) string) (string, error) {
	for _, r := range recs {
		if v := strings.TrimSpace(field(r)); v != "" {
			return v, nil
		}
	}
	return "", sentinel.ErrNotFound
}

// eq builds a single equality filter with the value quoted.
func eq(field, value string) string {
	return field + "='" + quoteEscaper.Replace(value) + "'"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
