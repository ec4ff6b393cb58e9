package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kainan-pos/api/internal/enum"
	"github.com/kainan-pos/api/internal/order"
	"github.com/kainan-pos/api/internal/ws"
)

// CartHandler exposes the order engine over HTTP. Every mutation responds
// with the full post-mutation snapshot and pushes the same snapshot to the
// terminal's WebSocket room, so all screens stay in sync.
//
// Mutations that target a line no longer in the cart are engine-level no-ops
// and still return 200 with the unchanged snapshot. Stale UI callbacks are
// expected traffic, not errors.
type CartHandler struct {
	carts  *order.Registry
	hub    *ws.Hub
	logger *zap.Logger
}

func NewCartHandler(carts *order.Registry, hub *ws.Hub, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, hub: hub, logger: logger}
}

// RegisterRoutes registers cart endpoints on the given Chi router. Mounted
// under /terminals/{tid}/cart so the terminal id is already matched.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)
	r.Post("/items", h.AddItem)
	r.Delete("/items/{id}", h.RemoveItem)
	r.Patch("/items/{id}/qty", h.UpdateQty)
	r.Post("/items/{id}/void", h.VoidItem)
	r.Post("/items/{id}/discount", h.ApplyItemDiscount)
	r.Post("/items/{id}/upgrade", h.UpgradeItem)
	r.Get("/items/{id}/upgrades", h.AvailableUpgrades)
	r.Post("/discount", h.ApplyOrderDiscount)
	r.Delete("/discount", h.RemoveOrderDiscount)
}

// --- Request / Response types ---

type selectionOptionRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	IsDefault bool   `json:"is_default"`
}

type selectionRequest struct {
	Type     string                  `json:"type"`
	Label    string                  `json:"label"`
	Selected *selectionOptionRequest `json:"selected"`
}

type addItemRequest struct {
	ID            int64              `json:"id"`
	Type          string             `json:"type"`
	Name          string             `json:"name"`
	Qty           int32              `json:"qty"`
	Price         string             `json:"price"`
	Image         string             `json:"image"`
	Category      string             `json:"category"`
	Customization []selectionRequest `json:"customization"`
}

type updateQtyRequest struct {
	Qty int32 `json:"qty"`
}

type itemDiscountRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

type upgradeRequest struct {
	Slot        string `json:"slot"`
	ToProductID int64  `json:"to_product_id"`
}

type orderDiscountRequest struct {
	Category       string `json:"category"`
	Kind           string `json:"kind"`
	Value          string `json:"value"`
	Code           string `json:"code"`
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	Note           string `json:"note"`
}

type selectionOptionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	IsDefault bool   `json:"is_default"`
}

type selectionResponse struct {
	Type     string                   `json:"type"`
	Label    string                   `json:"label"`
	Selected *selectionOptionResponse `json:"selected,omitempty"`
}

type upgradeResponse struct {
	OriginalID int64  `json:"original_id"`
	UpgradedID int64  `json:"upgraded_id"`
	AddedPrice string `json:"added_price"`
}

type itemResponse struct {
	InstanceKey       uuid.UUID           `json:"instance_key"`
	ID                int64               `json:"id"`
	Type              string              `json:"type"`
	Name              string              `json:"name"`
	Category          string              `json:"category,omitempty"`
	Image             string              `json:"image,omitempty"`
	Price             string              `json:"price"`
	BasePrice         string              `json:"base_price"`
	Qty               int32               `json:"qty"`
	LineTotal         string              `json:"line_total"`
	Customization     []selectionResponse `json:"customization,omitempty"`
	DrinkUpgrade      *upgradeResponse    `json:"drink_upgrade,omitempty"`
	FriesUpgrade      *upgradeResponse    `json:"fries_upgrade,omitempty"`
	Void              bool                `json:"void"`
	Discount          string              `json:"discount,omitempty"`
	DiscountValue     string              `json:"discount_value,omitempty"`
	PercentDiscount   string              `json:"percent_discount,omitempty"`
	ItemTotalDiscount string              `json:"item_total_discount"`
	DiscountNote      string              `json:"discount_note,omitempty"`
}

type orderDiscountResponse struct {
	Category       string `json:"category"`
	Kind           string `json:"kind"`
	Value          string `json:"value"`
	Code           string `json:"code,omitempty"`
	CardNumber     string `json:"card_number,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty"`
	Note           string `json:"note,omitempty"`
}

type snapshotResponse struct {
	Meals              []itemResponse         `json:"meals"`
	Products           []itemResponse         `json:"products"`
	OrderDiscount      *orderDiscountResponse `json:"order_discount,omitempty"`
	SubTotal           string                 `json:"sub_total"`
	TotalDiscount      string                 `json:"total_discount"`
	OrderTotalDiscount string                 `json:"order_total_discount"`
	GrandTotal         string                 `json:"grand_total"`
	VAT                string                 `json:"vat"`
	NetOfVAT           string                 `json:"net_of_vat"`
}

type upgradeOptionResponse struct {
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	AdditionalPrice string `json:"additional_price"`
}

type upgradeOptionsResponse struct {
	Drinks []upgradeOptionResponse `json:"drinks"`
	Fries  []upgradeOptionResponse `json:"fries"`
}

// --- Handlers ---

// GetCart returns the current snapshot without mutating anything.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(h.carts.Cart(terminalID).Snapshot()))
}

// ClearCart empties the terminal's order.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	cart := h.carts.Cart(terminalID)
	cart.Clear()
	h.respondAndBroadcast(w, terminalID, cart)
}

// AddItem adds a catalog item to the cart, merging into a structurally
// identical line when one exists.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	typ, ok := order.ParseItemType(req.Type)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item type"})
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		return
	}

	customization := make([]order.Selection, 0, len(req.Customization))
	for _, c := range req.Customization {
		sel := order.Selection{Type: c.Type, Label: c.Label}
		if c.Selected != nil {
			optPrice, err := decimal.NewFromString(c.Selected.Price)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customization price"})
				return
			}
			sel.Selected = &order.SelectionOption{
				ID:        c.Selected.ID,
				Name:      c.Selected.Name,
				Price:     optPrice,
				IsDefault: c.Selected.IsDefault,
			}
		}
		customization = append(customization, sel)
	}

	cart := h.carts.Cart(terminalID)
	cart.AddItem(order.ItemSpec{
		ID:            req.ID,
		Type:          typ,
		Name:          req.Name,
		Qty:           req.Qty,
		Price:         price,
		Image:         req.Image,
		Category:      req.Category,
		Customization: customization,
	})
	h.respondAndBroadcast(w, terminalID, cart)
}

// RemoveItem hard-deletes a line (kiosk flow).
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}
	cart := h.carts.Cart(terminalID)
	cart.RemoveItem(id, typ)
	h.respondAndBroadcast(w, terminalID, cart)
}

// UpdateQty sets a line's quantity, clamped to a minimum of 1.
func (h *CartHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}

	var req updateQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart := h.carts.Cart(terminalID)
	cart.UpdateQty(id, typ, req.Qty)
	h.respondAndBroadcast(w, terminalID, cart)
}

// VoidItem voids a line. Voiding is terminal and clears any active discount.
func (h *CartHandler) VoidItem(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}
	cart := h.carts.Cart(terminalID)
	cart.VoidItem(id, typ)
	h.respondAndBroadcast(w, terminalID, cart)
}

// ApplyItemDiscount applies, toggles off, or replaces a line discount.
func (h *CartHandler) ApplyItemDiscount(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}

	var req itemDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	kind, ok := order.ParseDiscountKind(req.Kind)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount kind"})
		return
	}

	value := decimal.Zero
	if req.Value != "" {
		var err error
		value, err = decimal.NewFromString(req.Value)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount value"})
			return
		}
	}

	cart := h.carts.Cart(terminalID)
	cart.ApplyDiscount(id, typ, kind, value, req.Note)
	h.respondAndBroadcast(w, terminalID, cart)
}

// UpgradeItem substitutes a slot component for a premium option, swaps the
// active option, or reverts to the regular component.
func (h *CartHandler) UpgradeItem(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}

	var req upgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	slot, ok := order.ParseSlot(req.Slot)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid upgrade slot"})
		return
	}

	cart := h.carts.Cart(terminalID)
	switch slot {
	case order.SlotDrink:
		cart.UpgradeDrink(id, typ, req.ToProductID)
	case order.SlotFries:
		cart.UpgradeFries(id, typ, req.ToProductID)
	}
	h.respondAndBroadcast(w, terminalID, cart)
}

// AvailableUpgrades lists the eligible substitutes per slot for a line.
func (h *CartHandler) AvailableUpgrades(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	id, typ, ok := h.itemTarget(w, r)
	if !ok {
		return
	}

	cart := h.carts.Cart(terminalID)
	item, found := cart.Item(id, typ)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	opts := cart.AvailableUpgrades(item)
	writeJSON(w, http.StatusOK, upgradeOptionsResponse{
		Drinks: toUpgradeOptionResponses(opts.Drinks),
		Fries:  toUpgradeOptionResponses(opts.Fries),
	})
}

// ApplyOrderDiscount sets the order-wide discount layer.
func (h *CartHandler) ApplyOrderDiscount(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}

	var req orderDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	switch req.Category {
	case enum.OrderDiscountVoucher, enum.OrderDiscountSCPWD, enum.OrderDiscountManual:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount category"})
		return
	}
	switch req.Kind {
	case enum.ValuePercentage, enum.ValueFixed:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount kind"})
		return
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid discount value"})
		return
	}

	cart := h.carts.Cart(terminalID)
	cart.ApplyOrderDiscount(order.OrderDiscount{
		Category:       req.Category,
		Kind:           req.Kind,
		Value:          value,
		Code:           req.Code,
		CardNumber:     req.CardNumber,
		CardholderName: req.CardholderName,
		Note:           req.Note,
	})
	h.respondAndBroadcast(w, terminalID, cart)
}

// RemoveOrderDiscount clears the order-wide discount layer.
func (h *CartHandler) RemoveOrderDiscount(w http.ResponseWriter, r *http.Request) {
	terminalID, ok := h.terminalID(w, r)
	if !ok {
		return
	}
	cart := h.carts.Cart(terminalID)
	cart.RemoveOrderDiscount()
	h.respondAndBroadcast(w, terminalID, cart)
}

// --- Helpers ---

func (h *CartHandler) terminalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	terminalID, err := uuid.Parse(chi.URLParam(r, "tid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid terminal ID"})
		return uuid.Nil, false
	}
	return terminalID, true
}

func (h *CartHandler) itemTarget(w http.ResponseWriter, r *http.Request) (int64, order.ItemType, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return 0, "", false
	}
	typ, ok := order.ParseItemType(r.URL.Query().Get("type"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item type"})
		return 0, "", false
	}
	return id, typ, true
}

// respondAndBroadcast sends the post-mutation snapshot to the caller and
// pushes the same payload to every screen watching the terminal.
func (h *CartHandler) respondAndBroadcast(w http.ResponseWriter, terminalID uuid.UUID, cart *order.Store) {
	resp := toSnapshotResponse(cart.Snapshot())

	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("marshal cart snapshot", zap.Error(err))
	} else {
		h.hub.BroadcastToTerminal(terminalID, ws.Event{Type: "cart.updated", Payload: payload})
	}

	writeJSON(w, http.StatusOK, resp)
}

func toSnapshotResponse(snap order.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Meals:              make([]itemResponse, 0, len(snap.Meals)),
		Products:           make([]itemResponse, 0, len(snap.Products)),
		SubTotal:           snap.SubTotal.StringFixed(2),
		TotalDiscount:      snap.TotalDiscount.StringFixed(2),
		OrderTotalDiscount: snap.OrderTotalDiscount.StringFixed(2),
		GrandTotal:         snap.GrandTotal.StringFixed(2),
		VAT:                snap.VAT.StringFixed(2),
		NetOfVAT:           snap.NetOfVAT.StringFixed(2),
	}
	for _, it := range snap.Meals {
		resp.Meals = append(resp.Meals, toItemResponse(it))
	}
	for _, it := range snap.Products {
		resp.Products = append(resp.Products, toItemResponse(it))
	}
	if snap.OrderDiscountInfo != nil {
		d := snap.OrderDiscountInfo
		resp.OrderDiscount = &orderDiscountResponse{
			Category:       d.Category,
			Kind:           d.Kind,
			Value:          d.Value.StringFixed(2),
			Code:           d.Code,
			CardNumber:     d.CardNumber,
			CardholderName: d.CardholderName,
			Note:           d.Note,
		}
	}
	return resp
}

func toItemResponse(it order.OrderItem) itemResponse {
	resp := itemResponse{
		InstanceKey:       it.InstanceKey,
		ID:                it.CatalogID,
		Type:              string(it.Type),
		Name:              it.Name,
		Category:          it.Category,
		Image:             it.Image,
		Price:             it.Price.StringFixed(2),
		BasePrice:         it.BasePrice.StringFixed(2),
		Qty:               it.Qty,
		LineTotal:         it.LineTotal().StringFixed(2),
		Void:              it.Void,
		Discount:          it.Discount.String(),
		ItemTotalDiscount: it.ItemTotalDiscount.StringFixed(2),
		DiscountNote:      it.DiscountNote,
	}
	if it.Discount != order.DiscountNone {
		resp.DiscountValue = it.DiscountValue.StringFixed(2)
		resp.PercentDiscount = it.PercentDiscount.StringFixed(2)
	}
	for _, c := range it.Customization {
		sel := selectionResponse{Type: c.Type, Label: c.Label}
		if c.Selected != nil {
			sel.Selected = &selectionOptionResponse{
				ID:        c.Selected.ID,
				Name:      c.Selected.Name,
				Price:     c.Selected.Price.StringFixed(2),
				IsDefault: c.Selected.IsDefault,
			}
		}
		resp.Customization = append(resp.Customization, sel)
	}
	if u := it.Upgrades.Drink; u != nil {
		resp.DrinkUpgrade = &upgradeResponse{
			OriginalID: u.OriginalID,
			UpgradedID: u.UpgradedID,
			AddedPrice: u.AddedPrice.StringFixed(2),
		}
	}
	if u := it.Upgrades.Fries; u != nil {
		resp.FriesUpgrade = &upgradeResponse{
			OriginalID: u.OriginalID,
			UpgradedID: u.UpgradedID,
			AddedPrice: u.AddedPrice.StringFixed(2),
		}
	}
	return resp
}

func toUpgradeOptionResponses(opts []order.UpgradeOption) []upgradeOptionResponse {
	out := make([]upgradeOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, upgradeOptionResponse{
			ProductID:       o.ProductID,
			Name:            o.Name,
			Price:           o.Price.StringFixed(2),
			AdditionalPrice: o.AdditionalPrice.StringFixed(2),
		})
	}
	return out
}
