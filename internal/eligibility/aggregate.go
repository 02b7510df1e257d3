package eligibility

import "sotcredit/internal/claims"

// Aggregate groups verdicts by invoice in first-seen order and computes the
// requested and eligible quantities for each line.
// This is pure domain logic - no I/O, no side effects.
func Aggregate(verdicts []Verdict, lines []claims.ClaimLine) []InvoiceGroup {
	groups := make([]InvoiceGroup, 0)
	index := make(map[string]int)

	for _, v := range verdicts {
		gi, ok := index[v.InvoiceNumber]
		if !ok {
			gi = len(groups)
			index[v.InvoiceNumber] = gi
			groups = append(groups, InvoiceGroup{InvoiceNumber: v.InvoiceNumber})
		}
		groups[gi].Lines = append(groups[gi].Lines, creditLine(v, requestedQuantity(lines, v.InvoiceNumber, v.ItemCode)))
	}
	return groups
}

func creditLine(v Verdict, requested int) CreditLine {
	return CreditLine{
		ItemCode:           v.ItemCode,
		SplitCode:          v.SplitCode,
		RequestedQuantity:  requested,
		EligibleQuantity:   v.EligibleQuantity(),
		Status:             v.Status,
		Eligible:           v.Eligible,
		OrderedQuantity:    v.OrderedQuantity,
		DeliveredQuantity:  v.DeliveredQuantity,
		RejectedQuantity:   v.RejectedQuantity,
		PreviousCredits:    v.PreviousCreditShipQuantity,
		DeliveryDate:       v.DeliveryDate,
		CandidateItemCodes: v.CandidateItemCodes,
	}
}

// requestedQuantity takes the first claim line for the same invoice and item.
func requestedQuantity(lines []claims.ClaimLine, invoiceNumber, itemCode string) int {
	for _, l := range lines {
		if l.InvoiceNumber == invoiceNumber && l.ItemCode == itemCode {
			return l.RequestedQuantity()
		}
	}
	return 0
}
