package order_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kainan-pos/api/internal/enum"
	"github.com/kainan-pos/api/internal/order"
)

func TestParseDiscountKind(t *testing.T) {
	cases := []struct {
		in   string
		want order.DiscountKind
		ok   bool
	}{
		{"sc", order.DiscountSeniorCitizen, true},
		{"pwd", order.DiscountPWD, true},
		{"manual", order.DiscountManualAmount, true},
		{"percentage", order.DiscountManualPercent, true},
		{"", order.DiscountNone, false},
		{"SC", order.DiscountNone, false},
		{"bogo", order.DiscountNone, false},
	}

	for _, tc := range cases {
		got, ok := order.ParseDiscountKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseDiscountKind(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDiscountKindRoundTrip(t *testing.T) {
	for _, kind := range []order.DiscountKind{
		order.DiscountSeniorCitizen,
		order.DiscountPWD,
		order.DiscountManualAmount,
		order.DiscountManualPercent,
	} {
		parsed, ok := order.ParseDiscountKind(kind.String())
		if !ok || parsed != kind {
			t.Errorf("round trip of %v failed: got %v, %v", kind, parsed, ok)
		}
	}
	if order.DiscountNone.String() != "" {
		t.Errorf("DiscountNone should encode to empty string, got %q", order.DiscountNone.String())
	}
}

func TestItemDiscountStatutoryVATExclusive(t *testing.T) {
	policy := order.DefaultPolicy()

	// 112.00 line: 20% off the VAT-exclusive 100.00 plus the forgiven VAT
	// leaves 80.00 payable, so the discount is 32.00.
	amount, percent := policy.ItemDiscount(order.DiscountSeniorCitizen, decimal.Zero, d("112.00"))
	if !amount.Equal(d("32.00")) {
		t.Errorf("sc amount: got %s, want 32.00", amount)
	}
	if !percent.Equal(d("20")) {
		t.Errorf("sc percent: got %s, want 20", percent)
	}

	// PWD uses the same statutory treatment.
	pwdAmount, _ := policy.ItemDiscount(order.DiscountPWD, decimal.Zero, d("112.00"))
	if !pwdAmount.Equal(amount) {
		t.Errorf("pwd amount %s should match sc amount %s", pwdAmount, amount)
	}
}

func TestItemDiscountStatutoryFlat(t *testing.T) {
	amount, percent := flatPolicy().ItemDiscount(order.DiscountSeniorCitizen, decimal.Zero, d("200.00"))
	if !amount.Equal(d("40.00")) {
		t.Errorf("flat sc amount: got %s, want 40.00", amount)
	}
	if !percent.Equal(d("20")) {
		t.Errorf("flat sc percent: got %s, want 20", percent)
	}
}

func TestItemDiscountManualPercent(t *testing.T) {
	amount, percent := flatPolicy().ItemDiscount(order.DiscountManualPercent, d("25"), d("200.00"))
	if !amount.Equal(d("50.00")) {
		t.Errorf("manual percent amount: got %s, want 50.00", amount)
	}
	if !percent.Equal(d("25")) {
		t.Errorf("manual percent: got %s, want 25", percent)
	}
}

func TestItemDiscountManualAmount(t *testing.T) {
	policy := flatPolicy()

	amount, percent := policy.ItemDiscount(order.DiscountManualAmount, d("30.00"), d("200.00"))
	if !amount.Equal(d("30.00")) {
		t.Errorf("manual amount: got %s, want 30.00", amount)
	}
	if !percent.Equal(d("15")) {
		t.Errorf("manual equivalent percent: got %s, want 15", percent)
	}

	// Clamped to the line total.
	amount, _ = policy.ItemDiscount(order.DiscountManualAmount, d("300.00"), d("200.00"))
	if !amount.Equal(d("200.00")) {
		t.Errorf("overshooting amount should clamp to 200.00, got %s", amount)
	}

	// Negative input clamps to zero.
	amount, _ = policy.ItemDiscount(order.DiscountManualAmount, d("-10.00"), d("200.00"))
	if !amount.IsZero() {
		t.Errorf("negative amount should clamp to zero, got %s", amount)
	}
}

func TestItemDiscountNoneKind(t *testing.T) {
	amount, percent := flatPolicy().ItemDiscount(order.DiscountNone, d("50"), d("200.00"))
	if !amount.IsZero() || !percent.IsZero() {
		t.Errorf("kind none should produce zero, got %s / %s", amount, percent)
	}
}

func TestPolicyVAT(t *testing.T) {
	policy := order.DefaultPolicy()

	if got := policy.VAT(d("112.00")); !got.Equal(d("12.00")) {
		t.Errorf("VAT of 112.00: got %s, want 12.00", got)
	}
	if got := policy.VAT(decimal.Zero); !got.IsZero() {
		t.Errorf("VAT of zero: got %s, want 0", got)
	}
}

func TestOrderDiscountAmount(t *testing.T) {
	cases := []struct {
		name       string
		discount   order.OrderDiscount
		afterItems string
		want       string
	}{
		{
			name:       "percentage",
			discount:   order.OrderDiscount{Kind: enum.ValuePercentage, Value: d("10")},
			afterItems: "160.00",
			want:       "16.00",
		},
		{
			name:       "fixed within remainder",
			discount:   order.OrderDiscount{Kind: enum.ValueFixed, Value: d("50.00")},
			afterItems: "160.00",
			want:       "50.00",
		},
		{
			name:       "fixed clamped to remainder",
			discount:   order.OrderDiscount{Kind: enum.ValueFixed, Value: d("500.00")},
			afterItems: "160.00",
			want:       "160.00",
		},
		{
			name:       "zero remainder",
			discount:   order.OrderDiscount{Kind: enum.ValueFixed, Value: d("50.00")},
			afterItems: "0.00",
			want:       "0",
		},
		{
			name:       "negative remainder",
			discount:   order.OrderDiscount{Kind: enum.ValuePercentage, Value: d("10")},
			afterItems: "-5.00",
			want:       "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.discount.Amount(d(tc.afterItems))
			if !got.Equal(d(tc.want)) {
				t.Errorf("Amount(%s) = %s, want %s", tc.afterItems, got, tc.want)
			}
		})
	}
}
