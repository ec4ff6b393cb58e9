package order

import "github.com/shopspring/decimal"

// Totals is the derived aggregate view of the current item list. Nothing
// here is stored; it is recomputed on every read so the UI never observes a
// half-updated sum.
type Totals struct {
	SubTotal           decimal.Decimal
	TotalDiscount      decimal.Decimal
	OrderTotalDiscount decimal.Decimal
	GrandTotal         decimal.Decimal

	// VAT is the informational VAT portion of SubTotal for receipt display.
	// Prices are VAT-inclusive, so it is never subtracted from GrandTotal.
	VAT      decimal.Decimal
	NetOfVAT decimal.Decimal
}

// ComputeTotals aggregates all non-voided lines, then layers the order-level
// discount on the post-item-discount subtotal (item discounts first, order
// discount second). The grand total is floored at zero.
func ComputeTotals(items []OrderItem, orderDiscount *OrderDiscount, policy DiscountPolicy) Totals {
	subTotal := decimal.Zero
	totalDiscount := decimal.Zero
	for _, it := range items {
		if it.Void {
			continue
		}
		subTotal = subTotal.Add(it.LineTotal())
		totalDiscount = totalDiscount.Add(it.ItemTotalDiscount)
	}

	afterItems := subTotal.Sub(totalDiscount)
	orderAmount := decimal.Zero
	if orderDiscount != nil {
		orderAmount = orderDiscount.Amount(afterItems)
	}

	grand := afterItems.Sub(orderAmount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	vat := policy.VAT(subTotal)
	return Totals{
		SubTotal:           subTotal,
		TotalDiscount:      totalDiscount,
		OrderTotalDiscount: orderAmount,
		GrandTotal:         grand,
		VAT:                vat,
		NetOfVAT:           subTotal.Sub(vat),
	}
}
