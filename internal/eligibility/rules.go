package eligibility

import (
	"time"

	"sotcredit/internal/records"
)

// deliveryRuling is the result of the timing and shortage rules.
type deliveryRuling struct {
	status    StatusReason
	reconcile bool
}

// evaluateDelivery applies the timing and shortage rules to a delivery.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (first match wins):
//  1. Claim raised inside the hold window (negative elapsed time included)
//  2. Claim older than the maximum claim age
//  3. Short shipment, which goes on to credit reconciliation
//  4. Otherwise the order was fully loaded
func evaluateDelivery(cfg Config, caseCreatedAt time.Time, rec records.DeliveryRecord) deliveryRuling {
	elapsedHours := caseCreatedAt.Sub(rec.ScheduledDeliveryDate).Hours()
	elapsedDays := elapsedHours / 24

	if elapsedHours < cfg.HoldWindow.Hours() {
		return deliveryRuling{status: StatusHoldTooEarly}
	}
	if elapsedDays > float64(cfg.MaxClaimAgeDays) {
		return deliveryRuling{status: StatusHoldTooLate}
	}
	if rec.OrderedQuantity > rec.AccountedQuantity() {
		return deliveryRuling{reconcile: true}
	}
	return deliveryRuling{status: StatusFullyLoaded}
}

// creditReconciliation is the outcome of comparing a shortage with prior credits.
type creditReconciliation struct {
	status   StatusReason
	eligible bool
	prior    int
}

// reconcileCredits compares the scanned shortage with credits already issued
// for the same invoice and item.
// This is pure domain logic - no I/O, no side effects.
func reconcileCredits(invoiceNumber, itemCode string, rec records.DeliveryRecord, memos []records.CreditMemoLine) creditReconciliation {
	matched := false
	prior := 0
	for _, m := range memos {
		if m.CountsAgainst(invoiceNumber, itemCode) {
			matched = true
			prior += m.OriginalShipQuantity
		}
	}
	if !matched {
		return creditReconciliation{status: StatusNoPriorCredits, eligible: true}
	}

	scannedDelta := rec.AccountedQuantity() - rec.OrderedQuantity
	switch {
	case scannedDelta == prior:
		return creditReconciliation{status: StatusExactPriorCredit, eligible: false, prior: prior}
	case scannedDelta > prior:
		return creditReconciliation{status: StatusPartialPriorCredit, eligible: true, prior: prior}
	default:
		return creditReconciliation{status: StatusEligible, eligible: true, prior: prior}
	}
}

// newVerdict copies the scanned quantities of a delivery into a verdict.
func newVerdict(line lineKey, snapshot records.InvoiceLineSnapshot, rec records.DeliveryRecord) *Verdict {
	return &Verdict{
		InvoiceNumber:     line.invoice,
		ItemCode:          line.item,
		SplitCode:         snapshot.SplitCode,
		OrderedQuantity:   rec.OrderedQuantity,
		DeliveredQuantity: rec.DeliveredQuantity,
		RejectedQuantity:  rec.RejectedQuantity,
		DeliveryDate:      rec.DeliveryDay(),
	}
}

type lineKey struct {
	invoice string
	item    string
}
