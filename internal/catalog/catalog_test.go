package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kainan-pos/api/internal/catalog"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewDerivesRegularSlotIDs(t *testing.T) {
	menu := catalog.New(nil, nil,
		[]catalog.UpgradeRule{{FromProductID: 8, ToProductID: 9, AdditionalPrice: d("10.00")}},
		[]catalog.UpgradeRule{{FromProductID: 5, ToProductID: 6, AdditionalPrice: d("15.00")}},
	)

	if menu.RegularDrinkID() != 8 {
		t.Errorf("regular drink id: got %d, want 8", menu.RegularDrinkID())
	}
	if menu.RegularFriesID() != 5 {
		t.Errorf("regular fries id: got %d, want 5", menu.RegularFriesID())
	}
}

func TestNewWithoutRulesHasZeroSentinels(t *testing.T) {
	menu := catalog.New(nil, nil, nil, nil)

	if menu.RegularDrinkID() != 0 || menu.RegularFriesID() != 0 {
		t.Errorf("expected zero sentinels, got drink %d fries %d", menu.RegularDrinkID(), menu.RegularFriesID())
	}
}

func TestLookups(t *testing.T) {
	menu := catalog.New(
		[]catalog.Product{{ID: 1, Name: "Spaghetti", Price: d("55.00")}},
		[]catalog.Meal{{ID: 7, Name: "Combo", BasePrice: d("99.00"), ProductIDs: []int64{1}}},
		nil, nil,
	)

	if p, ok := menu.Product(1); !ok || p.Name != "Spaghetti" {
		t.Errorf("Product(1) = %+v, %v", p, ok)
	}
	if _, ok := menu.Product(2); ok {
		t.Error("Product(2) should miss")
	}
	if m, ok := menu.Meal(7); !ok || m.Name != "Combo" {
		t.Errorf("Meal(7) = %+v, %v", m, ok)
	}
	if _, ok := menu.Meal(1); ok {
		t.Error("Meal(1) should miss")
	}
}

func TestListsPreserveMenuOrder(t *testing.T) {
	menu := catalog.New(
		[]catalog.Product{
			{ID: 3, Name: "C"},
			{ID: 1, Name: "A"},
			{ID: 2, Name: "B"},
			{ID: 1, Name: "A duplicate"},
		},
		nil, nil, nil,
	)

	products := menu.Products()
	if len(products) != 3 {
		t.Fatalf("expected duplicate id skipped, got %d products", len(products))
	}
	wantOrder := []int64{3, 1, 2}
	for i, want := range wantOrder {
		if products[i].ID != want {
			t.Errorf("position %d: got id %d, want %d", i, products[i].ID, want)
		}
	}
	if products[1].Name != "A" {
		t.Errorf("first occurrence should win, got %q", products[1].Name)
	}
}

func TestMealComponents(t *testing.T) {
	menu := catalog.New(
		[]catalog.Product{
			{ID: 11, Name: "Regular Burger"},
			{ID: 5, Name: "Regular Fries"},
			{ID: 8, Name: "Regular Drink"},
		},
		[]catalog.Meal{{ID: 4, Name: "Burger Meal", ProductIDs: []int64{11, 5, 99, 8}}},
		nil, nil,
	)

	meal, _ := menu.Meal(4)
	components := menu.MealComponents(meal)

	// Slot order is preserved; the unknown id 99 is skipped.
	if len(components) != 3 {
		t.Fatalf("expected 3 resolvable components, got %d", len(components))
	}
	wantNames := []string{"Regular Burger", "Regular Fries", "Regular Drink"}
	for i, want := range wantNames {
		if components[i].Name != want {
			t.Errorf("component %d: got %q, want %q", i, components[i].Name, want)
		}
	}
}

func TestDemoMenu(t *testing.T) {
	menu := catalog.Demo()

	if got := len(menu.Products()); got != 15 {
		t.Errorf("demo products: got %d, want 15", got)
	}
	if got := len(menu.Meals()); got != 6 {
		t.Errorf("demo meals: got %d, want 6", got)
	}
	if menu.RegularDrinkID() != 8 || menu.RegularFriesID() != 5 {
		t.Errorf("demo sentinels: drink %d fries %d", menu.RegularDrinkID(), menu.RegularFriesID())
	}

	meal, ok := menu.Meal(4)
	if !ok {
		t.Fatal("demo meal 4 missing")
	}
	if !meal.BasePrice.Equal(d("119.00")) {
		t.Errorf("meal 4 base price: got %s, want 119.00", meal.BasePrice)
	}
	components := menu.MealComponents(meal)
	if len(components) != 3 || components[1].ID != 5 || components[2].ID != 8 {
		t.Errorf("meal 4 components: got %+v", components)
	}

	if got := len(menu.DrinkUpgrades()); got != 2 {
		t.Errorf("demo drink upgrades: got %d, want 2", got)
	}
	if got := len(menu.FriesUpgrades()); got != 2 {
		t.Errorf("demo fries upgrades: got %d, want 2", got)
	}
}
