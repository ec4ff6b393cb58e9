package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kainan-pos/api/internal/catalog"
	"github.com/kainan-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// LoadCatalog materializes the full menu from Postgres. Called once at
// startup, before any cart mutation occurs; the engine treats the result as
// immutable from then on.
func LoadCatalog(ctx context.Context, q *Queries) (*catalog.Catalog, error) {
	productRows, err := q.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	mealRows, err := q.ListMeals(ctx)
	if err != nil {
		return nil, err
	}
	componentRows, err := q.ListMealComponents(ctx)
	if err != nil {
		return nil, err
	}
	ruleRows, err := q.ListUpgradeRules(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(productRows))
	for _, row := range productRows {
		products = append(products, catalog.Product{
			ID:         row.ID,
			Name:       row.Name,
			Category:   row.Category,
			Price:      numericToDecimal(row.Price),
			Type:       row.Type,
			Image:      row.ImageUrl.String,
			Upgradable: row.Upgradable,
		})
	}

	componentsByMeal := make(map[int64][]int64)
	for _, row := range componentRows {
		componentsByMeal[row.MealID] = append(componentsByMeal[row.MealID], row.ProductID)
	}

	meals := make([]catalog.Meal, 0, len(mealRows))
	for _, row := range mealRows {
		meals = append(meals, catalog.Meal{
			ID:         row.ID,
			Name:       row.Name,
			Category:   row.Category,
			BasePrice:  numericToDecimal(row.BasePrice),
			ProductIDs: componentsByMeal[row.ID],
			Image:      row.ImageUrl.String,
		})
	}

	var drinkUpgrades, friesUpgrades []catalog.UpgradeRule
	for _, row := range ruleRows {
		rule := catalog.UpgradeRule{
			FromProductID:   row.FromProductID,
			ToProductID:     row.ToProductID,
			AdditionalPrice: numericToDecimal(row.AdditionalPrice),
		}
		switch row.Slot {
		case enum.SlotDrink:
			drinkUpgrades = append(drinkUpgrades, rule)
		case enum.SlotFries:
			friesUpgrades = append(friesUpgrades, rule)
		default:
			return nil, fmt.Errorf("upgrade rule %d->%d: unknown slot %q", row.FromProductID, row.ToProductID, row.Slot)
		}
	}

	return catalog.New(products, meals, drinkUpgrades, friesUpgrades), nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}
