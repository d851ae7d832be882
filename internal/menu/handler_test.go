package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response does not contain data object: %s", w.Body.String())
	}
	return data
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
		logger  aqm.Logger
	}{
		{name: "withAllDependencies", catalog: DefaultCatalog(), logger: aqm.NewNoopLogger()},
		{name: "withNilLogger", catalog: DefaultCatalog(), logger: nil},
		{name: "withNilCatalog", catalog: nil, logger: aqm.NewNoopLogger()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.catalog, aqm.NewConfig(), tt.logger)
			if h == nil {
				t.Fatal("NewHandler() returned nil")
			}
			if h.catalog == nil {
				t.Error("NewHandler() left catalog nil")
			}
		})
	}
}

func TestHandlerRegisterRoutes(t *testing.T) {
	h := NewHandler(nil, nil, aqm.NewNoopLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/menu/stations/ovens/items", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /menu/stations/ovens/items status = %d, want %d", w.Code, http.StatusOK)
	}
	items, _ := decodeData(t, w)["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("items count = %d, want 1", len(items))
	}
}

func TestHandlerListStations(t *testing.T) {
	h := NewHandler(nil, nil, aqm.NewNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/menu/stations", nil)
	w := httptest.NewRecorder()
	h.ListStations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ListStations() status = %d, want %d", w.Code, http.StatusOK)
	}
	stations, _ := decodeData(t, w)["stations"].([]interface{})
	if len(stations) != 6 {
		t.Errorf("stations count = %d, want 6", len(stations))
	}
}

func TestHandlerGetItem(t *testing.T) {
	tests := []struct {
		name           string
		itemID         string
		expectedStatus int
	}{
		{name: "found", itemID: "mojito", expectedStatus: http.StatusOK},
		{name: "notFound", itemID: "sushi", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, nil, aqm.NewNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/menu/items/"+tt.itemID, nil)
			req = withURLParam(req, "itemID", tt.itemID)
			w := httptest.NewRecorder()
			h.GetItem(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("GetItem() status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerCalculateVariant(t *testing.T) {
	tests := []struct {
		name           string
		itemID         string
		body           string
		expectedStatus int
		expectedID     float64
	}{
		{
			name:           "explicitToggles",
			itemID:         "pizza",
			body:           `{"active_ingredients":{"plate":true,"pizza":true,"steam":false}}`,
			expectedStatus: http.StatusOK,
			expectedID:     103,
		},
		{
			name:           "emptyBodyUsesDefaults",
			itemID:         "pizza",
			body:           "",
			expectedStatus: http.StatusOK,
			expectedID:     107,
		},
		{
			name:           "invalidJSON",
			itemID:         "pizza",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknownItem",
			itemID:         "sushi",
			body:           `{}`,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, nil, aqm.NewNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/menu/items/"+tt.itemID+"/variant", bytes.NewBufferString(tt.body))
			req = withURLParam(req, "itemID", tt.itemID)
			w := httptest.NewRecorder()
			h.CalculateVariant(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("CalculateVariant() status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			data := decodeData(t, w)
			if got, _ := data["variant_id"].(float64); got != tt.expectedID {
				t.Errorf("variant_id = %v, want %v", got, tt.expectedID)
			}
		})
	}
}
