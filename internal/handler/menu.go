package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kainan-pos/api/internal/catalog"
)

// MenuHandler serves the loaded catalog to the terminals. The catalog is
// immutable after startup, so responses need no locking.
type MenuHandler struct {
	menu *catalog.Catalog
}

func NewMenuHandler(menu *catalog.Catalog) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.GetMenu)
}

type productResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      string `json:"price"`
	Type       string `json:"type"`
	Image      string `json:"image,omitempty"`
	Upgradable bool   `json:"upgradable"`
}

type mealResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Category  string            `json:"category"`
	BasePrice string            `json:"base_price"`
	Image     string            `json:"image,omitempty"`
	Products  []productResponse `json:"products"`
}

type upgradeRuleResponse struct {
	FromProductID   int64  `json:"from_product_id"`
	ToProductID     int64  `json:"to_product_id"`
	AdditionalPrice string `json:"additional_price"`
}

type menuResponse struct {
	Products      []productResponse     `json:"products"`
	Meals         []mealResponse        `json:"meals"`
	DrinkUpgrades []upgradeRuleResponse `json:"drink_upgrades"`
	FriesUpgrades []upgradeRuleResponse `json:"fries_upgrades"`
}

// GetMenu returns the full menu: products, meals with resolved components,
// and both upgrade tables.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	products := h.menu.Products()
	meals := h.menu.Meals()

	resp := menuResponse{
		Products:      make([]productResponse, 0, len(products)),
		Meals:         make([]mealResponse, 0, len(meals)),
		DrinkUpgrades: toUpgradeRuleResponses(h.menu.DrinkUpgrades()),
		FriesUpgrades: toUpgradeRuleResponses(h.menu.FriesUpgrades()),
	}

	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	for _, m := range meals {
		components := h.menu.MealComponents(m)
		mr := mealResponse{
			ID:        m.ID,
			Name:      m.Name,
			Category:  m.Category,
			BasePrice: m.BasePrice.StringFixed(2),
			Image:     m.Image,
			Products:  make([]productResponse, 0, len(components)),
		}
		for _, p := range components {
			mr.Products = append(mr.Products, toProductResponse(p))
		}
		resp.Meals = append(resp.Meals, mr)
	}

	writeJSON(w, http.StatusOK, resp)
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price.StringFixed(2),
		Type:       p.Type,
		Image:      p.Image,
		Upgradable: p.Upgradable,
	}
}

func toUpgradeRuleResponses(rules []catalog.UpgradeRule) []upgradeRuleResponse {
	out := make([]upgradeRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, upgradeRuleResponse{
			FromProductID:   rule.FromProductID,
			ToProductID:     rule.ToProductID,
			AdditionalPrice: rule.AdditionalPrice.StringFixed(2),
		})
	}
	return out
}
