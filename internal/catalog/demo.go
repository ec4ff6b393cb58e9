package catalog

import "github.com/shopspring/decimal"

func php(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Demo returns the built-in demo menu. cmd/seed loads it into Postgres, and
// the engine tests resolve against it directly.
func Demo() *Catalog {
	products := []Product{
		{ID: 1, Name: "1pc Chicken", Category: "Chickens", Price: php("89.00"), Type: "main", Image: "/food/chicken.png"},
		{ID: 2, Name: "2pc Chicken", Category: "Chickens", Price: php("149.00"), Type: "main", Image: "/food/chicken.png"},
		{ID: 3, Name: "Spaghetti", Category: "Pasta", Price: php("55.00"), Type: "side", Image: "/food/spag.png"},
		{ID: 4, Name: "Steamed Rice", Category: "Sides", Price: php("25.00"), Type: "side", Image: "/food/steamed.png"},
		{ID: 5, Name: "Regular Fries", Category: "Fries", Price: php("45.00"), Type: "side", Image: "/food/fries.png", Upgradable: true},
		{ID: 6, Name: "Medium Fries", Category: "Fries", Price: php("60.00"), Type: "side", Image: "/food/fries.png"},
		{ID: 7, Name: "Large Fries", Category: "Fries", Price: php("75.00"), Type: "side", Image: "/food/fries.png"},
		{ID: 8, Name: "Regular Drink", Category: "Beverages", Price: php("35.00"), Type: "drink", Image: "/food/drinks.png", Upgradable: true},
		{ID: 9, Name: "Medium Drink", Category: "Beverages", Price: php("45.00"), Type: "drink", Image: "/food/drinksmed.png"},
		{ID: 10, Name: "Large Drink", Category: "Beverages", Price: php("55.00"), Type: "drink", Image: "/food/drinkslrg.png"},
		{ID: 11, Name: "Regular Burger", Category: "Burgers", Price: php("59.00"), Type: "main", Image: "/food/burger.png"},
		{ID: 12, Name: "Cheeseburger", Category: "Burgers", Price: php("79.00"), Type: "main", Image: "/food/cburger.png"},
		{ID: 13, Name: "Quarter Pounder", Category: "Burgers", Price: php("149.00"), Type: "main", Image: "/food/quarter.png"},
		{ID: 14, Name: "6pcs Chicken Bucket", Category: "Chickens", Price: php("450.00"), Type: "main", Image: "/food/6siken.png"},
		{ID: 15, Name: "8pcs Chicken Bucket", Category: "Chickens", Price: php("600.00"), Type: "main", Image: "/food/8siken.png"},
	}

	meals := []Meal{
		{ID: 1, Name: "1pc Chicken with Rice & Drink", Category: "Chickens", ProductIDs: []int64{1, 4, 8}, BasePrice: php("129.00"), Image: "/food/1pcmeal.png"},
		{ID: 2, Name: "2pc Chicken with Rice & Drink", Category: "Chickens", ProductIDs: []int64{2, 4, 8}, BasePrice: php("189.00"), Image: "/food/2pcmeal.png"},
		{ID: 3, Name: "1pc Chicken with Spaghetti & Drink", Category: "Chickens", ProductIDs: []int64{1, 3, 8}, BasePrice: php("139.00"), Image: "/food/sikenspag.png"},
		{ID: 4, Name: "Regular Burger Meal", Category: "Burgers", ProductIDs: []int64{11, 5, 8}, BasePrice: php("119.00"), Image: "/food/rburgermeal.png"},
		{ID: 5, Name: "Cheeseburger Meal", Category: "Burgers", ProductIDs: []int64{12, 5, 8}, BasePrice: php("139.00"), Image: "/food/cburgermeal.png"},
		{ID: 6, Name: "Quarter Pounder Meal", Category: "Burgers", ProductIDs: []int64{13, 5, 8}, BasePrice: php("189.00"), Image: "/food/quartermeal.png"},
	}

	drinkUpgrades := []UpgradeRule{
		{FromProductID: 8, ToProductID: 9, AdditionalPrice: php("10.00")},
		{FromProductID: 8, ToProductID: 10, AdditionalPrice: php("20.00")},
	}
	friesUpgrades := []UpgradeRule{
		{FromProductID: 5, ToProductID: 6, AdditionalPrice: php("15.00")},
		{FromProductID: 5, ToProductID: 7, AdditionalPrice: php("30.00")},
	}

	return New(products, meals, drinkUpgrades, friesUpgrades)
}
