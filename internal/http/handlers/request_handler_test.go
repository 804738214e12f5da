// README: Handler tests through the full router wiring.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lastmile/internal/catalog"
	lmhttp "lastmile/internal/http"
	"lastmile/internal/modules/cluster"
	"lastmile/internal/modules/demand"
	"lastmile/internal/modules/dispatch"
	"lastmile/internal/modules/live"
	"lastmile/internal/modules/request"
	"lastmile/internal/modules/route"
)

func buildTestRouter(t *testing.T) (http.Handler, *live.View) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.New()
	log := slog.Default()
	requests := request.NewService(request.NewStore(), cat, nil, route.MaxCapacity(), log)
	view := live.NewView(2, log)
	builder := route.NewBuilder(nil, time.Second, 45, log)
	disp := dispatch.NewService(requests, cluster.NewEngine(route.MaxCapacity()), builder, view, 3, 4, log)

	server := lmhttp.NewServer(lmhttp.ServerDeps{
		Catalog:  cat,
		Requests: requests,
		Dispatch: disp,
		View:     view,
		Demand:   demand.NewGenerator(requests, cat, 1, log),
		Log:      log,
	})
	return server.Routes(), view
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateRideRequest(t *testing.T) {
	h, _ := buildTestRouter(t)

	w := doRequest(t, h, http.MethodPost, "/api/rides/request", map[string]any{
		"origin_id":      "larnaca_airport",
		"destination_id": "platres",
		"passengers":     3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var created request.RideRequest
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Status != request.StatusPending {
		t.Errorf("unexpected response: %+v", created)
	}
	if created.Origin.ID != "larnaca_airport" || created.Destination.ID != "platres" {
		t.Errorf("locations not resolved: %+v", created)
	}
}

func TestCreateRideRequestValidation(t *testing.T) {
	h, _ := buildTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"zero passengers", map[string]any{"origin_id": "larnaca", "destination_id": "platres", "passengers": 0}, http.StatusBadRequest},
		{"same location", map[string]any{"origin_id": "larnaca", "destination_id": "larnaca", "passengers": 2}, http.StatusBadRequest},
		{"unknown location", map[string]any{"origin_id": "atlantis", "destination_id": "platres", "passengers": 2}, http.StatusBadRequest},
		{"missing fields", map[string]any{"passengers": 2}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doRequest(t, h, http.MethodPost, "/api/rides/request", tc.body); w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestListPendingRequests(t *testing.T) {
	h, _ := buildTestRouter(t)

	for i := 0; i < 2; i++ {
		doRequest(t, h, http.MethodPost, "/api/rides/request", map[string]any{
			"origin_id": "limassol", "destination_id": "kourion", "passengers": 1,
		})
	}

	w := doRequest(t, h, http.MethodGet, "/api/requests", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
}

func TestGetRequestNotFound(t *testing.T) {
	h, _ := buildTestRouter(t)
	if w := doRequest(t, h, http.MethodGet, "/api/requests/deadbeef", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestActiveRoutesReflectsView(t *testing.T) {
	h, view := buildTestRouter(t)

	w := doRequest(t, h, http.MethodGet, "/api/routes/active", nil)
	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 0 {
		t.Fatalf("count = %d, want 0", resp.Count)
	}

	view.PublishLocal(route.Route{ID: "r1", Key: "Troodos", Passengers: 4})

	w = doRequest(t, h, http.MethodGet, "/api/routes/active", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}

	if w := doRequest(t, h, http.MethodGet, "/api/routes/active/Troodos", nil); w.Code != http.StatusOK {
		t.Errorf("get by key status = %d", w.Code)
	}
	if w := doRequest(t, h, http.MethodGet, "/api/routes/active/Mordor", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown key status = %d, want 404", w.Code)
	}
}

func TestListLocations(t *testing.T) {
	h, _ := buildTestRouter(t)
	w := doRequest(t, h, http.MethodGet, "/api/locations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count < 20 {
		t.Errorf("count = %d, want the full catalog", resp.Count)
	}
}

func TestVehiclesUnavailableWithoutFleet(t *testing.T) {
	h, _ := buildTestRouter(t)
	if w := doRequest(t, h, http.MethodGet, "/api/vehicles", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	body := map[string]any{"lat": 34.9, "lng": 33.6}
	if w := doRequest(t, h, http.MethodPut, "/api/vehicles/bus-1/location", body); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGenerateDemand(t *testing.T) {
	h, _ := buildTestRouter(t)

	w := doRequest(t, h, http.MethodPost, "/api/demo/generate-requests", map[string]any{"count": 5})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Generated int `json:"generated"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Generated != 5 {
		t.Errorf("generated = %d, want 5", resp.Generated)
	}

	if w := doRequest(t, h, http.MethodPost, "/api/demo/generate-requests", map[string]any{"count": -1}); w.Code != http.StatusBadRequest {
		t.Errorf("bad count status = %d, want 400", w.Code)
	}
}

func TestStats(t *testing.T) {
	h, view := buildTestRouter(t)

	doRequest(t, h, http.MethodPost, "/api/rides/request", map[string]any{
		"origin_id": "larnaca", "destination_id": "lefkara", "passengers": 2,
	})
	view.PublishLocal(route.Route{ID: "r1", Key: "Larnaca", CO2SavedKg: 12.5})

	w := doRequest(t, h, http.MethodGet, "/api/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Requests struct {
			Total   int64 `json:"total"`
			Pending int   `json:"pending"`
		} `json:"requests"`
		Routes struct {
			Active int `json:"active"`
			Local  int `json:"local"`
		} `json:"routes"`
		CO2SavedKg float64 `json:"co2_saved_kg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Requests.Total != 1 || resp.Requests.Pending != 1 {
		t.Errorf("requests = %+v", resp.Requests)
	}
	if resp.Routes.Active != 1 || resp.Routes.Local != 1 {
		t.Errorf("routes = %+v", resp.Routes)
	}
	if resp.CO2SavedKg != 12.5 {
		t.Errorf("co2 = %v, want 12.5", resp.CO2SavedKg)
	}
}

func TestHealth(t *testing.T) {
	h, _ := buildTestRouter(t)
	if w := doRequest(t, h, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
