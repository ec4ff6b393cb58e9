package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType separates composite meals from standalone products. The terminals
// render the two groups as separate cart sections.
type ItemType string

const (
	TypeMeal    ItemType = "meal"
	TypeProduct ItemType = "product"
)

// ParseItemType converts the wire encoding used by the terminals.
func ParseItemType(s string) (ItemType, bool) {
	switch ItemType(s) {
	case TypeMeal, TypeProduct:
		return ItemType(s), true
	}
	return "", false
}

// SelectionOption is the chosen value of one customization component.
type SelectionOption struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	IsDefault bool
}

// Selection is one customization slot on a meal with multiple-choice
// components. The selection's incremental price is already folded into the
// line's unit price by the ordering UI; it is carried here for receipt
// display and for structural identity.
type Selection struct {
	Type     string
	Label    string
	Selected *SelectionOption
}

// Upgrade records one accepted slot substitution so the surcharge can be
// reported separately on the receipt.
type Upgrade struct {
	OriginalID int64
	UpgradedID int64
	AddedPrice decimal.Decimal
}

// Upgrades holds at most one active upgrade per slot.
type Upgrades struct {
	Drink *Upgrade
	Fries *Upgrade
}

// OrderItem is one line of the in-progress order.
type OrderItem struct {
	// InstanceKey is unique within the order for the order's lifetime. It
	// distinguishes lines that reference the same catalog id with different
	// customization or upgrades.
	InstanceKey uuid.UUID

	// CatalogID is the id of the underlying meal or product. Not unique
	// across lines.
	CatalogID int64
	Type      ItemType

	Name     string
	Category string
	Image    string

	// Price is the effective unit price including accepted upgrade
	// surcharges; BasePrice is the unit price before upgrades.
	Price     decimal.Decimal
	BasePrice decimal.Decimal
	Qty       int32

	Customization []Selection
	Upgrades      Upgrades

	// MealProductIDs are the component product ids of a meal line, used to
	// decide upgrade slot eligibility.
	MealProductIDs []int64

	// Void excludes the line from every total but keeps it visible for
	// audit. Voided lines accept no further mutations.
	Void bool

	Discount          DiscountKind
	DiscountValue     decimal.Decimal
	PercentDiscount   decimal.Decimal
	ItemTotalDiscount decimal.Decimal
	DiscountNote      string
}

// LineTotal is price × qty. Voided lines still report it for display; the
// pricing engine is responsible for excluding them.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Qty))
}

// structuralKey canonicalizes the (catalog id, customization, upgrades)
// tuple that find-or-merge compares. Discount and void state are excluded on
// purpose: the store skips voided lines before comparing, and a discount does
// not change what the line is.
func (i OrderItem) structuralKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d", i.Type, i.CatalogID)
	for _, c := range i.Customization {
		if c.Selected != nil {
			fmt.Fprintf(&b, "|c:%s=%s@%s", c.Type, c.Selected.ID, c.Selected.Price.String())
		} else {
			fmt.Fprintf(&b, "|c:%s=", c.Type)
		}
	}
	if u := i.Upgrades.Drink; u != nil {
		fmt.Fprintf(&b, "|ud:%d", u.UpgradedID)
	}
	if u := i.Upgrades.Fries; u != nil {
		fmt.Fprintf(&b, "|uf:%d", u.UpgradedID)
	}
	return b.String()
}
