package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Product is a products table row.
type Product struct {
	ID         int64
	Name       string
	Category   string
	Price      pgtype.Numeric
	Type       string
	ImageUrl   pgtype.Text
	Upgradable bool
}

// Meal is a meals table row.
type Meal struct {
	ID        int64
	Name      string
	Category  string
	BasePrice pgtype.Numeric
	ImageUrl  pgtype.Text
}

// MealComponent links a meal to one component product slot.
type MealComponent struct {
	MealID    int64
	ProductID int64
	Position  int32
}

// UpgradeRule is an upgrade_rules table row. Slot is "drink" or "fries".
type UpgradeRule struct {
	Slot            string
	FromProductID   int64
	ToProductID     int64
	AdditionalPrice pgtype.Numeric
}

// ListProducts returns all products in menu order.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, category, price, type, image_url, upgradable
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Type, &p.ImageUrl, &p.Upgradable); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListMeals returns all meals in menu order.
func (q *Queries) ListMeals(ctx context.Context) ([]Meal, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, category, base_price, image_url
		FROM meals
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var out []Meal
	for rows.Next() {
		var m Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.BasePrice, &m.ImageUrl); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListMealComponents returns every meal→product slot link, ordered by slot
// position within each meal.
func (q *Queries) ListMealComponents(ctx context.Context) ([]MealComponent, error) {
	rows, err := q.db.Query(ctx, `
		SELECT meal_id, product_id, position
		FROM meal_components
		ORDER BY meal_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list meal components: %w", err)
	}
	defer rows.Close()

	var out []MealComponent
	for rows.Next() {
		var mc MealComponent
		if err := rows.Scan(&mc.MealID, &mc.ProductID, &mc.Position); err != nil {
			return nil, fmt.Errorf("scan meal component: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// ListUpgradeRules returns the full upgrade table across slots.
func (q *Queries) ListUpgradeRules(ctx context.Context) ([]UpgradeRule, error) {
	rows, err := q.db.Query(ctx, `
		SELECT slot, from_product_id, to_product_id, additional_price
		FROM upgrade_rules
		ORDER BY slot, to_product_id`)
	if err != nil {
		return nil, fmt.Errorf("list upgrade rules: %w", err)
	}
	defer rows.Close()

	var out []UpgradeRule
	for rows.Next() {
		var r UpgradeRule
		if err := rows.Scan(&r.Slot, &r.FromProductID, &r.ToProductID, &r.AdditionalPrice); err != nil {
			return nil, fmt.Errorf("scan upgrade rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
