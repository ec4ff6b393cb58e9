package order

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemSpec is the catalog-sourced input for a new cart line, as sent by the
// kiosk and cashier UIs. Price is the unit price with any customization
// increments already included.
type ItemSpec struct {
	ID            int64
	Type          ItemType
	Name          string
	Qty           int32
	Price         decimal.Decimal
	Image         string
	Category      string
	Customization []Selection
}

// Store owns the single in-progress order of one terminal. Every mutation is
// serialized behind one mutex: find-or-merge and the discount/void paths are
// read-modify-write sequences that must not interleave.
//
// Mutations targeting an (id, type) that is not in the order are silent
// no-ops. The UI is allowed to fire stale callbacks (a dismissed modal's
// confirm, a double-tapped button) without the engine surfacing errors.
type Store struct {
	mu     sync.Mutex
	menu   Menu
	policy DiscountPolicy

	meals         []OrderItem
	products      []OrderItem
	orderDiscount *OrderDiscount
}

// NewStore creates an empty order bound to a loaded menu and a discount
// policy.
func NewStore(menu Menu, policy DiscountPolicy) *Store {
	return &Store{menu: menu, policy: policy}
}

func (s *Store) group(typ ItemType) *[]OrderItem {
	switch typ {
	case TypeMeal:
		return &s.meals
	case TypeProduct:
		return &s.products
	}
	return nil
}

// findActive returns the first non-voided line matching the catalog id.
func findActive(group *[]OrderItem, id int64) *OrderItem {
	if group == nil {
		return nil
	}
	for idx := range *group {
		line := &(*group)[idx]
		if !line.Void && line.CatalogID == id {
			return line
		}
	}
	return nil
}

// AddItem appends a new line, or bumps the quantity of a structurally
// identical non-voided line instead of duplicating it. Structural identity is
// the (catalog id, customization, upgrades) tuple; fresh lines carry no
// upgrades, so they only ever merge into un-upgraded lines.
func (s *Store) AddItem(spec ItemSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.group(spec.Type)
	if group == nil {
		return
	}

	qty := spec.Qty
	if qty < 1 {
		qty = 1
	}

	item := OrderItem{
		InstanceKey:   uuid.New(),
		CatalogID:     spec.ID,
		Type:          spec.Type,
		Name:          spec.Name,
		Category:      spec.Category,
		Image:         spec.Image,
		Price:         spec.Price,
		BasePrice:     spec.Price,
		Qty:           qty,
		Customization: spec.Customization,
	}
	if spec.Type == TypeMeal {
		if meal, ok := s.menu.Meal(spec.ID); ok {
			item.MealProductIDs = meal.ProductIDs
		}
	}

	key := item.structuralKey()
	for idx := range *group {
		line := &(*group)[idx]
		if line.Void {
			continue
		}
		if line.structuralKey() == key {
			line.Qty += qty
			s.refreshDiscount(line)
			return
		}
	}
	*group = append(*group, item)
}

// RemoveItem hard-deletes the first non-voided matching line. Used by the
// kiosk cart before checkout, where no void/discount bookkeeping is needed.
func (s *Store) RemoveItem(id int64, typ ItemType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.group(typ)
	if group == nil {
		return
	}
	for idx := range *group {
		if !(*group)[idx].Void && (*group)[idx].CatalogID == id {
			*group = append((*group)[:idx], (*group)[idx+1:]...)
			return
		}
	}
}

// UpdateQty sets the quantity of the first active matching line, clamped to
// a minimum of 1. Decrementing at qty=1 is therefore a no-op, never a
// removal. Voided lines are immutable.
func (s *Store) UpdateQty(id int64, typ ItemType, qty int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := findActive(s.group(typ), id)
	if line == nil {
		return
	}
	if qty < 1 {
		qty = 1
	}
	line.Qty = qty
	s.refreshDiscount(line)
}

// VoidItem voids the first active matching line. Void always wins over
// discount state, so the active discount is cleared; the line stays in the
// list (struck through in the UI) and never returns to active. Upgrade
// records are kept for receipt/audit display.
func (s *Store) VoidItem(id int64, typ ItemType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := findActive(s.group(typ), id)
	if line == nil {
		return
	}
	line.Void = true
	line.Discount = DiscountNone
	line.DiscountValue = decimal.Zero
	line.PercentDiscount = decimal.Zero
	line.ItemTotalDiscount = decimal.Zero
	line.DiscountNote = ""
}

// ApplyDiscount applies kind to the first active matching line. Re-applying
// the kind the line already carries toggles it off; a different kind replaces
// the prior discount rather than stacking. Voided lines are skipped.
func (s *Store) ApplyDiscount(id int64, typ ItemType, kind DiscountKind, value decimal.Decimal, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == DiscountNone {
		return
	}
	line := findActive(s.group(typ), id)
	if line == nil {
		return
	}

	if line.Discount == kind {
		line.Discount = DiscountNone
		line.DiscountValue = decimal.Zero
		line.PercentDiscount = decimal.Zero
		line.ItemTotalDiscount = decimal.Zero
		line.DiscountNote = ""
		return
	}

	line.Discount = kind
	line.DiscountValue = value
	line.DiscountNote = note
	amount, percent := s.policy.ItemDiscount(kind, value, line.LineTotal())
	line.ItemTotalDiscount = amount
	line.PercentDiscount = percent
}

// refreshDiscount recomputes the active discount after the line total
// changed (merge, qty update, upgrade swap), preserving the invariant that a
// discount never exceeds the line's extended price.
func (s *Store) refreshDiscount(line *OrderItem) {
	if line.Discount == DiscountNone {
		return
	}
	amount, percent := s.policy.ItemDiscount(line.Discount, line.DiscountValue, line.LineTotal())
	line.ItemTotalDiscount = amount
	line.PercentDiscount = percent
}

// UpgradeDrink substitutes the line's regular drink component for the given
// premium product. Re-invoking with the active upgrade id is idempotent;
// invoking with a different id swaps the surcharge; invoking with the
// regular sentinel reverts the slot.
func (s *Store) UpgradeDrink(id int64, typ ItemType, toProductID int64) {
	s.upgradeSlot(SlotDrink, id, typ, toProductID)
}

// UpgradeFries is UpgradeDrink for the fries slot.
func (s *Store) UpgradeFries(id int64, typ ItemType, toProductID int64) {
	s.upgradeSlot(SlotFries, id, typ, toProductID)
}

func (s *Store) upgradeSlot(slot Slot, id int64, typ ItemType, toProductID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := findActive(s.group(typ), id)
	if line == nil {
		return
	}
	if applyUpgrade(s.menu, line, slot, toProductID) {
		s.refreshDiscount(line)
	}
}

// AvailableUpgrades is a pure query: the eligible substitutes per slot for
// the item, joined against the live catalog. It never mutates the order.
func (s *Store) AvailableUpgrades(item OrderItem) UpgradeOptions {
	return availableUpgrades(s.menu, item)
}

// Item returns a copy of the first non-voided line matching (id, type).
func (s *Store) Item(id int64, typ ItemType) (OrderItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := findActive(s.group(typ), id)
	if line == nil {
		return OrderItem{}, false
	}
	return *line, true
}

// ApplyOrderDiscount sets the order-wide discount layer.
func (s *Store) ApplyOrderDiscount(d OrderDiscount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderDiscount = &d
}

// RemoveOrderDiscount clears the order-wide discount layer.
func (s *Store) RemoveOrderDiscount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderDiscount = nil
}

// Clear resets the order to empty. Called once by the checkout flow after
// payment and printing succeed, or on explicit cancel.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = nil
	s.products = nil
	s.orderDiscount = nil
}

// Snapshot is the aggregate view the UI re-renders from after each
// mutation.
type Snapshot struct {
	Meals             []OrderItem
	Products          []OrderItem
	OrderDiscountInfo *OrderDiscount
	Totals
}

// Snapshot returns copies of the item lists plus freshly computed
// aggregates. The mutation that produced the current state completed under
// the same mutex, so the totals always match the items.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]OrderItem, 0, len(s.meals)+len(s.products))
	all = append(all, s.meals...)
	all = append(all, s.products...)

	snap := Snapshot{
		Meals:    append([]OrderItem(nil), s.meals...),
		Products: append([]OrderItem(nil), s.products...),
		Totals:   ComputeTotals(all, s.orderDiscount, s.policy),
	}
	if s.orderDiscount != nil {
		d := *s.orderDiscount
		snap.OrderDiscountInfo = &d
	}
	return snap
}
