package order

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/appetiteclub/gourmet/internal/pairing"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

// Handler serves the cart, orders and pairing endpoints.
type Handler struct {
	store       OrderStore
	catalog     *menu.Catalog
	recommender *pairing.Recommender
	logger      aqm.Logger
	config      *aqm.Config
	tlm         *telemetry.HTTP
}

func NewHandler(store OrderStore, catalog *menu.Catalog, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if catalog == nil {
		catalog = menu.DefaultCatalog()
	}
	return &Handler{
		store:       store,
		catalog:     catalog,
		recommender: pairing.NewRecommender(catalog),
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddCartItem)
		r.Delete("/items/{id}", h.RemoveCartItem)
		r.Get("/pairings", h.GetPairings)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})
}

type AddCartItemRequest struct {
	ItemID            string                 `json:"item_id"`
	ActiveIngredients menu.ActiveIngredients `json:"active_ingredients"`
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCart")
	defer finish()

	cart := h.store.Cart()
	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"items":       cart,
		"count":       len(cart),
		"eta_minutes": ETAMinutes(cart),
	}, nil)
}

// AddCartItem handles POST /cart/items
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddCartItem")
	defer finish()
	log := h.log(r)

	var req AddCartItemRequest
	if !h.decodeJSON(w, r, &req, log) {
		return
	}

	if strings.TrimSpace(req.ItemID) == "" {
		h.respondValidationErrors(w, []menu.ValidationError{{Field: "item_id", Message: "item_id is required"}})
		return
	}

	item, ok := h.catalog.GetMenuItem(req.ItemID)
	if !ok {
		h.respondValidationErrors(w, []menu.ValidationError{{Field: "item_id", Message: "unknown menu item"}})
		return
	}

	active := req.ActiveIngredients
	if active == nil {
		active = item.DefaultIngredients()
	}

	ci := h.store.AddToCart(r.Context(), item, active, item.VariantID(active))
	log.Debug("item added to cart", "cart_item_id", ci.CartItemID.String(), "item_id", ci.ItemID, "variant_id", ci.VariantID)

	aqm.Respond(w, http.StatusCreated, ci, nil)
}

// RemoveCartItem handles DELETE /cart/items/{id}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveCartItem")
	defer finish()
	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	h.store.RemoveFromCart(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearCart")
	defer finish()

	h.store.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetPairings handles GET /cart/pairings
func (h *Handler) GetPairings(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetPairings")
	defer finish()
	log := h.log(r)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			log.Debug("invalid limit", "limit", raw)
			aqm.RespondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	snap := h.store.Snapshot()
	cartIDs := make([]string, 0, len(snap.Cart))
	for _, c := range snap.Cart {
		cartIDs = append(cartIDs, c.ItemID)
	}

	result := h.recommender.Recommend(pairing.Request{
		CartItemIDs: cartIDs,
		History:     Baskets(snap.Orders),
		Limit:       limit,
	})

	aqm.Respond(w, http.StatusOK, result, nil)
}

// PlaceOrder handles POST /orders
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PlaceOrder")
	defer finish()
	log := h.log(r)

	o := h.store.PlaceOrder(r.Context())
	if o == nil {
		aqm.RespondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	log.Info("order placed", "order_id", o.OrderID.String(), "items", len(o.Items), "eta_minutes", o.ETAMinutes)

	links := aqm.RESTfulLinksFor(o)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, o, links...)
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	orders := h.store.Orders()
	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	}, nil)
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()
	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o := h.store.GetOrderByID(id)
	if o == nil {
		aqm.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log aqm.Logger) (uuid.UUID, bool) {
	rawID := chi.URLParam(r, "id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Debug("invalid id parameter", "id", rawID, "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, log aqm.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			aqm.RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		log.Debug("failed to read request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		log.Debug("failed to decode request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}
	return true
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errs []menu.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errs,
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}
