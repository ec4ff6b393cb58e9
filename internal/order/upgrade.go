package order

import (
	"github.com/kainan-pos/api/internal/catalog"
	"github.com/shopspring/decimal"
)

// Slot identifies an upgradable meal component.
type Slot string

const (
	SlotDrink Slot = "drink"
	SlotFries Slot = "fries"
)

// ParseSlot converts the wire encoding used by the terminals.
func ParseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotDrink, SlotFries:
		return Slot(s), true
	}
	return "", false
}

// Menu is the read-only catalog view the engine resolves upgrades against.
// Satisfied by *catalog.Catalog.
type Menu interface {
	Product(id int64) (catalog.Product, bool)
	Meal(id int64) (catalog.Meal, bool)
	DrinkUpgrades() []catalog.UpgradeRule
	FriesUpgrades() []catalog.UpgradeRule
	RegularDrinkID() int64
	RegularFriesID() int64
}

// UpgradeOption is one eligible substitute for a slot, joined against the
// live catalog for the current name and price.
type UpgradeOption struct {
	ProductID       int64
	Name            string
	Price           decimal.Decimal
	AdditionalPrice decimal.Decimal
}

// UpgradeOptions groups eligible options per slot. A slot the item has no
// regular component for stays empty.
type UpgradeOptions struct {
	Drinks []UpgradeOption
	Fries  []UpgradeOption
}

func slotRules(menu Menu, slot Slot) []catalog.UpgradeRule {
	if slot == SlotFries {
		return menu.FriesUpgrades()
	}
	return menu.DrinkUpgrades()
}

func slotRegularID(menu Menu, slot Slot) int64 {
	if slot == SlotFries {
		return menu.RegularFriesID()
	}
	return menu.RegularDrinkID()
}

func (u *Upgrades) slot(slot Slot) **Upgrade {
	if slot == SlotFries {
		return &u.Fries
	}
	return &u.Drink
}

// eligibleForSlot reports whether the item carries a regular component for
// the slot. A line that already holds an upgrade on the slot stays eligible
// so it can be swapped or reverted.
func eligibleForSlot(menu Menu, item OrderItem, slot Slot) bool {
	regular := slotRegularID(menu, slot)
	if regular == 0 {
		return false
	}
	switch item.Type {
	case TypeMeal:
		for _, id := range item.MealProductIDs {
			if id == regular {
				return true
			}
		}
	case TypeProduct:
		if item.CatalogID == regular {
			return true
		}
	}
	return *item.Upgrades.slot(slot) != nil
}

// availableUpgrades joins the upgrade table against the catalog for every
// slot the item is eligible on.
func availableUpgrades(menu Menu, item OrderItem) UpgradeOptions {
	var out UpgradeOptions
	if eligibleForSlot(menu, item, SlotDrink) {
		out.Drinks = optionsFor(menu, menu.DrinkUpgrades())
	}
	if eligibleForSlot(menu, item, SlotFries) {
		out.Fries = optionsFor(menu, menu.FriesUpgrades())
	}
	return out
}

func optionsFor(menu Menu, rules []catalog.UpgradeRule) []UpgradeOption {
	opts := make([]UpgradeOption, 0, len(rules))
	for _, rule := range rules {
		p, ok := menu.Product(rule.ToProductID)
		if !ok {
			continue
		}
		opts = append(opts, UpgradeOption{
			ProductID:       p.ID,
			Name:            p.Name,
			Price:           p.Price,
			AdditionalPrice: rule.AdditionalPrice,
		})
	}
	return opts
}

// applyUpgrade mutates the item's slot upgrade and reports whether anything
// changed. toProductID equal to the slot's regular sentinel reverts to the
// regular component. Unknown targets, ineligible items and voided lines are
// no-ops. Selecting a second option for a slot replaces the previous
// surcharge, it never stacks.
func applyUpgrade(menu Menu, item *OrderItem, slot Slot, toProductID int64) bool {
	if item.Void {
		return false
	}
	if !eligibleForSlot(menu, *item, slot) {
		return false
	}

	current := item.Upgrades.slot(slot)

	if toProductID == slotRegularID(menu, slot) {
		if *current == nil {
			return false
		}
		*current = nil
		recomputeUnitPrice(item)
		return true
	}

	var rule *catalog.UpgradeRule
	for _, r := range slotRules(menu, slot) {
		if r.ToProductID == toProductID {
			rule = &r
			break
		}
	}
	if rule == nil {
		return false
	}
	if _, ok := menu.Product(toProductID); !ok {
		return false
	}
	if *current != nil && (*current).UpgradedID == toProductID {
		// Re-selecting the active option: idempotent.
		return false
	}

	*current = &Upgrade{
		OriginalID: slotRegularID(menu, slot),
		UpgradedID: toProductID,
		AddedPrice: rule.AdditionalPrice,
	}
	recomputeUnitPrice(item)
	return true
}

// recomputeUnitPrice rebuilds the effective unit price from the base price
// plus all active slot surcharges. Rebuilding from the base (instead of
// adjusting by deltas) is what keeps swaps non-additive.
func recomputeUnitPrice(item *OrderItem) {
	price := item.BasePrice
	if item.Upgrades.Drink != nil {
		price = price.Add(item.Upgrades.Drink.AddedPrice)
	}
	if item.Upgrades.Fries != nil {
		price = price.Add(item.Upgrades.Fries.AddedPrice)
	}
	item.Price = price
}
