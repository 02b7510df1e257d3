// Package ces adapts the enterprise invoice service to records.InvoiceService.
package ces

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"sotcredit/internal/records"
	"sotcredit/internal/upstream/gateway"
	"sotcredit/pkg/domain"
	"sotcredit/pkg/platform/sentinel"
)

const (
	servicePath = "/services/enterprise-invoice-service-v2"
	pageSize    = 10000
)

// Client implements records.InvoiceService.
type Client struct {
	gw gateway.Getter
}

var _ records.InvoiceService = (*Client)(nil)

// New creates a Client over an authenticated gateway.
func New(gw gateway.Getter) (*Client, error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}
	return &Client{gw: gw}, nil
}

// page is the envelope of every invoice service listing.
type page[T any] struct {
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
}

type invoiceItem struct {
	ItemNumber domain.Scalar `json:"itemNumber"`
	SplitCode  domain.Scalar `json:"splitCode"`
}

type deliveryItem struct {
	ItemNumber            domain.Scalar `json:"itemNumber"`
	Quantity              domain.Scalar `json:"quantity"`
	DeliveredItemQty      domain.Scalar `json:"deliveredItemQty"`
	RejectedItemQty       domain.Scalar `json:"rejectedItemQty"`
	ScheduledDeliveryDate domain.Scalar `json:"scheduledDeliveryDate"`
}

type memoItem struct {
	InvoiceRefNumber domain.Scalar `json:"invoiceRefNumber"`
	ItemNumber       domain.Scalar `json:"itemNumber"`
	TransCode        domain.Scalar `json:"transCode"`
	OriginalShipQty  domain.Scalar `json:"originalShipQty"`
}

// InvoiceItems returns the lines of an original invoice.
func (c *Client) InvoiceItems(ctx context.Context, opco, invoiceNumber string) ([]records.InvoiceItem, error) {
	var resp page[invoiceItem]
	if err := c.list(ctx, invoicePath(opco, invoiceNumber), url.Values{}, &resp); err != nil {
		return nil, err
	}
	out := make([]records.InvoiceItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, records.InvoiceItem{
			ItemNumber: it.ItemNumber.Text,
			SplitCode:  it.SplitCode.Text,
		})
	}
	return out, nil
}

// DeliveryItems returns what the carrier scanned for an invoice.
func (c *Client) DeliveryItems(ctx context.Context, opco, invoiceNumber string) ([]records.DeliveryItem, error) {
	var resp page[deliveryItem]
	if err := c.list(ctx, invoicePath(opco, invoiceNumber)+"/delivery", url.Values{}, &resp); err != nil {
		return nil, err
	}
	out := make([]records.DeliveryItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, records.DeliveryItem{
			ItemNumber:            it.ItemNumber.Text,
			Quantity:              it.Quantity,
			DeliveredItemQty:      it.DeliveredItemQty,
			RejectedItemQty:       it.RejectedItemQty,
			ScheduledDeliveryDate: it.ScheduledDeliveryDate.Text,
		})
	}
	return out, nil
}

// CreditMemoItems returns the customer's ledger lines dated within [from, to].
func (c *Client) CreditMemoItems(ctx context.Context, opco, customerNumber string, from, to time.Time) ([]records.MemoItem, error) {
	params := url.Values{
		"date_from": {from.Format(records.DateLayout)},
		"date_to":   {to.Format(records.DateLayout)},
	}
	path := servicePath + "/invoice/extended/details/opcos/" + url.PathEscape(opco) +
		"/customers/" + url.PathEscape(customerNumber)

	var resp page[memoItem]
	if err := c.list(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	out := make([]records.MemoItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, records.MemoItem{
			InvoiceRefNumber: it.InvoiceRefNumber.Text,
			ItemNumber:       it.ItemNumber.Text,
			TransCode:        it.TransCode.Text,
			OriginalShipQty:  it.OriginalShipQty,
		})
	}
	return out, nil
}

// list fetches one full page. An empty listing is sentinel.ErrNotFound.
func (c *Client) list(ctx context.Context, path string, params url.Values, dst interface{ empty() bool }) error {
	params.Set("page_size", strconv.Itoa(pageSize))
	if err := c.gw.GetJSON(ctx, path, params, dst); err != nil {
		return err
	}
	if dst.empty() {
		return sentinel.ErrNotFound
	}
	return nil
}

func (p *page[T]) empty() bool {
	return p.TotalItems <= 0 && len(p.Items) == 0
}

func invoicePath(opco, invoiceNumber string) string {
	return servicePath + "/invoice/details/opcos/" + url.PathEscape(opco) +
		"/invoices/" + url.PathEscape(invoiceNumber)
}
