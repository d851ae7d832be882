package menu

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

// Handler exposes the catalog and the variant calculator over HTTP.
type Handler struct {
	catalog *Catalog
	logger  aqm.Logger
	config  *aqm.Config
	tlm     *telemetry.HTTP
}

func NewHandler(catalog *Catalog, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger,
		config:  config,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/stations", h.ListStations)
		r.Get("/stations/{stationID}/items", h.ListStationItems)
		r.Get("/items", h.ListItems)
		r.Get("/items/{itemID}", h.GetItem)
		r.Post("/items/{itemID}/variant", h.CalculateVariant)
	})
}

type stationView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PrepMinutes int    `json:"prep_minutes"`
}

type VariantRequest struct {
	ActiveIngredients ActiveIngredients `json:"active_ingredients"`
}

type VariantResponse struct {
	ItemID            string            `json:"item_id"`
	BaseID            int               `json:"base_id"`
	VariantID         int               `json:"variant_id"`
	ActiveIngredients ActiveIngredients `json:"active_ingredients"`
	IngredientNames   []string          `json:"ingredient_names"`
}

func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListStations")
	defer finish()

	stations := h.catalog.Stations()
	views := make([]stationView, 0, len(stations))
	for _, s := range stations {
		views = append(views, stationView{ID: s.ID, Name: s.Label(), PrepMinutes: s.PrepMinutes})
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"stations": views,
	}, nil)
}

func (h *Handler) ListStationItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListStationItems")
	defer finish()

	stationID := chi.URLParam(r, "stationID")
	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"station": h.catalog.GetStationName(stationID),
		"items":   h.catalog.GetItemsByStation(stationID),
	}, nil)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListItems")
	defer finish()

	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"items": h.catalog.Items(),
	}, nil)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
	defer finish()
	log := h.log(r)

	itemID := chi.URLParam(r, "itemID")
	item, ok := h.catalog.GetMenuItem(itemID)
	if !ok {
		log.Debug("menu item not found", "item_id", itemID)
		aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	aqm.Respond(w, http.StatusOK, item, nil)
}

// CalculateVariant handles POST /menu/items/{itemID}/variant
func (h *Handler) CalculateVariant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CalculateVariant")
	defer finish()
	log := h.log(r)

	itemID := chi.URLParam(r, "itemID")
	item, ok := h.catalog.GetMenuItem(itemID)
	if !ok {
		log.Debug("menu item not found", "item_id", itemID)
		aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req VariantRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			log.Debug("failed to decode request body", "error", err)
			aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}
	if req.ActiveIngredients == nil {
		req.ActiveIngredients = item.DefaultIngredients()
	}

	aqm.Respond(w, http.StatusOK, VariantResponse{
		ItemID:            item.ID,
		BaseID:            item.BaseID,
		VariantID:         item.VariantID(req.ActiveIngredients),
		ActiveIngredients: req.ActiveIngredients,
		IngredientNames:   item.ActiveIngredientNames(req.ActiveIngredients),
	}, nil)
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}
