package kitchen

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/appetiteclub/gourmet/pkg/enums/kitchenstatus"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	DefaultRefreshInterval = time.Second
	keepaliveInterval      = 30 * time.Second
	viewEvent              = "kitchen-view"
)

// Handler serves the kitchen display and its status actions.
type Handler struct {
	store   order.OrderStore
	logger  aqm.Logger
	config  *aqm.Config
	tlm     *telemetry.HTTP
	now     func() time.Time
	refresh time.Duration
}

func NewHandler(store order.OrderStore, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	refresh := DefaultRefreshInterval
	if config != nil {
		raw := config.GetStringOrDef("kitchen.refresh.interval", DefaultRefreshInterval.String())
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			refresh = d
		} else {
			logger.Info("invalid kitchen refresh interval, using default", "value", raw, "default", DefaultRefreshInterval.String())
		}
	}

	return &Handler{
		store:   store,
		logger:  logger,
		config:  config,
		tlm:     telemetry.NewHTTP(),
		now:     func() time.Time { return time.Now().UTC() },
		refresh: refresh,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/kitchen", func(r chi.Router) {
		r.Get("/", h.GetView)
		r.Get("/stream", h.Stream)
		r.Patch("/orders/{orderID}/items/{itemID}/cook", h.CookItem)
		r.Patch("/orders/{orderID}/items/{itemID}/bump", h.BumpItem)
	})
}

func (h *Handler) project() View {
	return ProjectKitchenView(h.store.Orders(), h.now())
}

// GetView handles GET /kitchen
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetView")
	defer finish()

	view := h.project()
	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"view":      view,
		"has_items": view.HasItems(),
	}, nil)
}

// Stream handles GET /kitchen/stream. It pushes a fresh projection every
// refresh interval until the client goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	log := h.log(r)
	log.Info("new kitchen stream connection")

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")
	flush(w)

	if err := h.sendView(w); err != nil {
		log.Error("failed to send kitchen view", "error", err)
		return
	}

	refresh := time.NewTicker(h.refresh)
	defer refresh.Stop()
	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Info("kitchen stream client disconnected")
			return

		case <-keepalive.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flush(w)

		case <-refresh.C:
			if err := h.sendView(w); err != nil {
				log.Error("failed to send kitchen view", "error", err)
				return
			}
		}
	}
}

func (h *Handler) sendView(w http.ResponseWriter) error {
	data, err := json.Marshal(h.project())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", viewEvent, data); err != nil {
		return err
	}
	flush(w)
	return nil
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// CookItem handles PATCH /kitchen/orders/{orderID}/items/{itemID}/cook
func (h *Handler) CookItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CookItem")
	defer finish()
	h.updateStatus(w, r, kitchenstatus.Statuses.Cooking.Code())
}

// BumpItem handles PATCH /kitchen/orders/{orderID}/items/{itemID}/bump
func (h *Handler) BumpItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.BumpItem")
	defer finish()
	h.updateStatus(w, r, kitchenstatus.Statuses.Bumped.Code())
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, next string) {
	log := h.log(r)

	orderID, ok := h.parseUUIDParam(w, r, "orderID", log)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(w, r, "itemID", log)
	if !ok {
		return
	}

	updated, err := h.store.UpdateKitchenItemStatus(r.Context(), orderID, itemID, next)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			aqm.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrItemNotFound):
			aqm.RespondError(w, http.StatusNotFound, "Order item not found")
		case errors.Is(err, order.ErrInvalidStatus):
			aqm.RespondError(w, http.StatusBadRequest, "Invalid kitchen status")
		default:
			log.Error("cannot update kitchen status", "error", err)
			aqm.RespondError(w, http.StatusInternalServerError, "Could not update kitchen status")
		}
		return
	}

	log.Debug("kitchen status updated", "order_id", orderID.String(), "cart_item_id", itemID.String(), "status", next)
	aqm.Respond(w, http.StatusOK, updated, nil)
}

func (h *Handler) parseUUIDParam(w http.ResponseWriter, r *http.Request, name string, log aqm.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Debug("invalid id parameter", name, raw, "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}
