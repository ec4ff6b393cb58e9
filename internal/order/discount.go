package order

import (
	"github.com/kainan-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// DiscountKind is the closed set of per-item discount variants. The UI's
// string encodings ("sc", "pwd", "manual", "percentage") are converted at the
// HTTP boundary only.
type DiscountKind uint8

const (
	DiscountNone DiscountKind = iota
	DiscountSeniorCitizen
	DiscountPWD
	DiscountManualAmount
	DiscountManualPercent
)

// ParseDiscountKind converts the wire encoding used by the terminals.
func ParseDiscountKind(s string) (DiscountKind, bool) {
	switch s {
	case "sc":
		return DiscountSeniorCitizen, true
	case "pwd":
		return DiscountPWD, true
	case "manual":
		return DiscountManualAmount, true
	case "percentage":
		return DiscountManualPercent, true
	}
	return DiscountNone, false
}

func (k DiscountKind) String() string {
	switch k {
	case DiscountSeniorCitizen:
		return "sc"
	case DiscountPWD:
		return "pwd"
	case DiscountManualAmount:
		return "manual"
	case DiscountManualPercent:
		return "percentage"
	}
	return ""
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// DiscountPolicy computes per-item discount amounts. The statutory rate and
// VAT rate are policy input, not business facts baked into the engine.
type DiscountPolicy struct {
	// StatutoryRate is the SC/PWD rate, e.g. 0.20 for 20%.
	StatutoryRate decimal.Decimal
	// VATRate is the VAT rate the unit prices already include, e.g. 0.12.
	VATRate decimal.Decimal
	// VATExclusive applies the statutory rate to the VAT-exclusive amount:
	// discounted = line × (1 − rate) / (1 + vat).
	VATExclusive bool
}

// DefaultPolicy matches the statutory Philippine SC/PWD treatment the
// cashier terminals apply: 20% off the VAT-exclusive price, 12% VAT.
func DefaultPolicy() DiscountPolicy {
	return DiscountPolicy{
		StatutoryRate: decimal.NewFromFloat(0.20),
		VATRate:       decimal.NewFromFloat(0.12),
		VATExclusive:  true,
	}
}

// ItemDiscount returns the discount amount and equivalent percentage for
// kind applied to a line total. The amount is clamped to [0, lineTotal] so a
// discount can never make the line negative.
func (p DiscountPolicy) ItemDiscount(kind DiscountKind, value, lineTotal decimal.Decimal) (amount, percent decimal.Decimal) {
	switch kind {
	case DiscountSeniorCitizen, DiscountPWD:
		percent = p.StatutoryRate.Mul(hundred)
		if p.VATExclusive {
			discounted := lineTotal.Mul(one.Sub(p.StatutoryRate)).Div(one.Add(p.VATRate))
			amount = lineTotal.Sub(discounted)
		} else {
			amount = lineTotal.Mul(p.StatutoryRate)
		}
	case DiscountManualPercent:
		percent = value
		amount = lineTotal.Mul(value).Div(hundred)
	case DiscountManualAmount:
		amount = value
		if lineTotal.IsPositive() {
			percent = value.Mul(hundred).Div(lineTotal)
		}
	default:
		return decimal.Zero, decimal.Zero
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if amount.GreaterThan(lineTotal) {
		amount = lineTotal
	}
	return amount, percent
}

// VAT returns the informational VAT portion of a VAT-inclusive amount:
// amount − amount/(1+rate). It is receipt decomposition only and is never
// subtracted from the grand total.
func (p DiscountPolicy) VAT(amount decimal.Decimal) decimal.Decimal {
	divisor := one.Add(p.VATRate)
	if divisor.IsZero() {
		return decimal.Zero
	}
	return amount.Sub(amount.Div(divisor))
}

// OrderDiscount is the order-wide discount layer. It applies after all
// item-level discounts are summed and is not attributable to any line. The
// card fields are audit data for SC/PWD card presentation.
type OrderDiscount struct {
	Category       string // enum.OrderDiscountVoucher | OrderDiscountSCPWD | OrderDiscountManual
	Kind           string // enum.ValuePercentage | enum.ValueFixed
	Value          decimal.Decimal
	Code           string
	CardNumber     string
	CardholderName string
	Note           string
}

// Amount computes the order-level discount on the post-item-discount
// subtotal. Fixed amounts are clamped to it so the grand total cannot go
// negative through this layer.
func (d OrderDiscount) Amount(afterItemDiscounts decimal.Decimal) decimal.Decimal {
	if !afterItemDiscounts.IsPositive() {
		return decimal.Zero
	}
	if d.Kind == enum.ValuePercentage {
		return afterItemDiscounts.Mul(d.Value).Div(hundred)
	}
	if d.Value.GreaterThan(afterItemDiscounts) {
		return afterItemDiscounts
	}
	return d.Value
}
