package catalog

import "github.com/shopspring/decimal"

// Product is a standalone ("ala carte") menu item.
type Product struct {
	ID         int64
	Name       string
	Category   string
	Price      decimal.Decimal
	Type       string
	Image      string
	Upgradable bool
}

// Meal is a composite menu item: a base price plus component product slots.
type Meal struct {
	ID         int64
	Name       string
	Category   string
	BasePrice  decimal.Decimal
	ProductIDs []int64
	Image      string
}

// UpgradeRule maps a regular component slot to a premium substitute at a
// fixed additional price.
type UpgradeRule struct {
	FromProductID   int64
	ToProductID     int64
	AdditionalPrice decimal.Decimal
}

// Catalog is the read-only menu the order engine resolves against. It is
// fully loaded before any order mutation occurs and never changes afterwards.
type Catalog struct {
	products     map[int64]Product
	productOrder []int64
	meals        map[int64]Meal
	mealOrder    []int64

	drinkUpgrades []UpgradeRule
	friesUpgrades []UpgradeRule

	// Sentinel catalog ids of the regular slot components, derived from the
	// upgrade table's "from" side.
	regularDrinkID int64
	regularFriesID int64
}

// New builds a catalog from menu records. The regular-slot sentinel ids are
// taken from the upgrade rules; a slot with no rules has sentinel 0, which
// matches no product.
func New(products []Product, meals []Meal, drinkUpgrades, friesUpgrades []UpgradeRule) *Catalog {
	c := &Catalog{
		products:      make(map[int64]Product, len(products)),
		meals:         make(map[int64]Meal, len(meals)),
		drinkUpgrades: drinkUpgrades,
		friesUpgrades: friesUpgrades,
	}
	for _, p := range products {
		if _, dup := c.products[p.ID]; dup {
			continue
		}
		c.products[p.ID] = p
		c.productOrder = append(c.productOrder, p.ID)
	}
	for _, m := range meals {
		if _, dup := c.meals[m.ID]; dup {
			continue
		}
		c.meals[m.ID] = m
		c.mealOrder = append(c.mealOrder, m.ID)
	}
	if len(drinkUpgrades) > 0 {
		c.regularDrinkID = drinkUpgrades[0].FromProductID
	}
	if len(friesUpgrades) > 0 {
		c.regularFriesID = friesUpgrades[0].FromProductID
	}
	return c
}

// Product looks up a standalone item by catalog id.
func (c *Catalog) Product(id int64) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Meal looks up a composite item by catalog id.
func (c *Catalog) Meal(id int64) (Meal, bool) {
	m, ok := c.meals[id]
	return m, ok
}

// Products returns all standalone items in menu order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.productOrder))
	for _, id := range c.productOrder {
		out = append(out, c.products[id])
	}
	return out
}

// Meals returns all composite items in menu order.
func (c *Catalog) Meals() []Meal {
	out := make([]Meal, 0, len(c.mealOrder))
	for _, id := range c.mealOrder {
		out = append(out, c.meals[id])
	}
	return out
}

// MealComponents resolves a meal's component slots against the product list,
// preserving slot order and skipping ids the menu no longer carries.
func (c *Catalog) MealComponents(m Meal) []Product {
	out := make([]Product, 0, len(m.ProductIDs))
	for _, id := range m.ProductIDs {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// DrinkUpgrades returns the upgrade table for the drink slot.
func (c *Catalog) DrinkUpgrades() []UpgradeRule { return c.drinkUpgrades }

// FriesUpgrades returns the upgrade table for the fries slot.
func (c *Catalog) FriesUpgrades() []UpgradeRule { return c.friesUpgrades }

// RegularDrinkID is the sentinel id of the regular drink component.
func (c *Catalog) RegularDrinkID() int64 { return c.regularDrinkID }

// RegularFriesID is the sentinel id of the regular fries component.
func (c *Catalog) RegularFriesID() int64 { return c.regularFriesID }
