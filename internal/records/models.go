package records

import (
	"strconv"
	"time"

	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
)

// DateLayout is the calendar-date format used by the invoice service.
const DateLayout = "2006-01-02"

// TransCodeCredit marks a ledger entry as an issued credit.
const TransCodeCredit = "C"

// InvoiceItem is one line of an original invoice as returned upstream.
type InvoiceItem struct {
	ItemNumber string
	SplitCode  string
}

// DeliveryItem is one scanned-delivery line as returned upstream.
type DeliveryItem struct {
	ItemNumber            string
	Quantity              domain.Scalar
	DeliveredItemQty      domain.Scalar
	RejectedItemQty       domain.Scalar
	ScheduledDeliveryDate string
}

// MemoItem is one historical ledger line as returned upstream.
type MemoItem struct {
	InvoiceRefNumber string
	ItemNumber       string
	TransCode        string
	OriginalShipQty  domain.Scalar
}

// InvoiceLineSnapshot is the validated view of an original invoice line.
type InvoiceLineSnapshot struct {
	ItemCode  string
	SplitCode domain.SplitCode
}

// NewInvoiceLineSnapshot normalizes the split code; any invoice item is a valid snapshot.
func NewInvoiceLineSnapshot(item InvoiceItem) InvoiceLineSnapshot {
	return InvoiceLineSnapshot{
		ItemCode:  item.ItemNumber,
		SplitCode: domain.NormalizeSplitCode(item.SplitCode),
	}
}

// DeliveryRecord is what the carrier scanned for one item on one invoice.
// Invariant: OrderedQuantity and ScheduledDeliveryDate were present upstream.
type DeliveryRecord struct {
	ItemCode              string
	OrderedQuantity       int
	DeliveredQuantity     int
	RejectedQuantity      int
	ScheduledDeliveryDate time.Time
}

// NewDeliveryRecord validates a scanned item. Delivered and rejected quantities
// default to zero when absent; ordered quantity and delivery date are required.
//
// Errors: CodeDataIntegrity naming the offending field.
func NewDeliveryRecord(item DeliveryItem) (*DeliveryRecord, error) {
	if !item.Quantity.Present {
		return nil, integrityError(item.ItemNumber, "quantity", "quantity is missing in scanned item")
	}
	ordered, err := item.Quantity.Int()
	if err != nil {
		return nil, integrityError(item.ItemNumber, "quantity", "quantity is not an integer")
	}
	delivered, err := optionalQuantity(item.DeliveredItemQty)
	if err != nil {
		return nil, integrityError(item.ItemNumber, "deliveredItemQty", "deliveredItemQty is not an integer")
	}
	rejected, err := optionalQuantity(item.RejectedItemQty)
	if err != nil {
		return nil, integrityError(item.ItemNumber, "rejectedItemQty", "rejectedItemQty is not an integer")
	}
	if item.ScheduledDeliveryDate == "" {
		return nil, integrityError(item.ItemNumber, "scheduledDeliveryDate", "scheduledDeliveryDate is missing in scanned item")
	}
	scheduled, err := time.Parse(DateLayout, item.ScheduledDeliveryDate)
	if err != nil {
		return nil, integrityError(item.ItemNumber, "scheduledDeliveryDate", "scheduledDeliveryDate is not a YYYY-MM-DD date")
	}

	return &DeliveryRecord{
		ItemCode:              item.ItemNumber,
		OrderedQuantity:       ordered,
		DeliveredQuantity:     delivered,
		RejectedQuantity:      rejected,
		ScheduledDeliveryDate: scheduled,
	}, nil
}

// AccountedQuantity is everything the carrier scanned as delivered or rejected.
func (d DeliveryRecord) AccountedQuantity() int {
	return d.DeliveredQuantity + d.RejectedQuantity
}

// DeliveryDay formats the scheduled delivery date as sent upstream.
func (d DeliveryRecord) DeliveryDay() string {
	return d.ScheduledDeliveryDate.Format(DateLayout)
}

// CreditMemoLine is a validated historical ledger entry.
type CreditMemoLine struct {
	ReferencedInvoiceNumber string
	ItemCode                string
	TransactionCode         string
	OriginalShipQuantity    int
}

// NewCreditMemoLine validates a ledger line. An absent ship quantity counts as zero.
//
// Errors: CodeDataIntegrity when the ship quantity is not an integer.
func NewCreditMemoLine(item MemoItem) (CreditMemoLine, error) {
	qty, err := optionalQuantity(item.OriginalShipQty)
	if err != nil {
		return CreditMemoLine{}, integrityError(item.ItemNumber, "originalShipQty", "originalShipQty is not an integer").
			WithDetail("referenced_invoice", item.InvoiceRefNumber)
	}
	return CreditMemoLine{
		ReferencedInvoiceNumber: item.InvoiceRefNumber,
		ItemCode:                item.ItemNumber,
		TransactionCode:         item.TransCode,
		OriginalShipQuantity:    qty,
	}, nil
}

// CountsAgainst reports whether the entry is an issued credit for the invoice/item.
func (m CreditMemoLine) CountsAgainst(invoiceNumber, itemCode string) bool {
	return m.ReferencedInvoiceNumber == invoiceNumber &&
		m.ItemCode == itemCode &&
		m.TransactionCode == TransCodeCredit
}

func optionalQuantity(s domain.Scalar) (int, error) {
	if !s.Present {
		return 0, nil
	}
	return s.Int()
}

func integrityError(itemCode, field, msg string) *dErrors.Error {
	return dErrors.New(dErrors.CodeDataIntegrity, msg+" for SUPC "+strconv.Quote(itemCode)).
		WithDetail("supc", itemCode).
		WithDetail("field", field)
}
