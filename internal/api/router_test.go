package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minion-profit/internal/api/models"
	"minion-profit/internal/catalog"
	"minion-profit/internal/data"
	"minion-profit/internal/model"

	"github.com/gin-gonic/gin"
)

type stubSim struct{}

func (stubSim) Run(_ context.Context, t model.Task) (*model.Result, error) {
	switch t.Fuel {
	case "Broken":
		return nil, fmt.Errorf("%w: unknown fuel", model.ErrConfiguration)
	case "Priceless":
		return nil, fmt.Errorf("fuel cost: %w", model.ErrPriceUnavailable)
	case "Throttled":
		return nil, fmt.Errorf("auction: %w", &data.APIError{StatusCode: 429, Code: "RATE_LIMIT_EXCEEDED", Message: "slow down", RetryAfter: "30"})
	}
	return &model.Result{
		Task:              t,
		RawDrops:          map[string]int64{"Mutton": 10},
		ProfitInstantSell: 1234,
		APRInstantSell:    model.UndefinedAPR,
	}, nil
}

func newTestRouter(t *testing.T, sim bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	results := []model.Result{
		{Task: model.Task{Minion: "Sheep", Level: 11, Seconds: 3600}, ProfitInstantSell: 10, CostTotal: 100},
		{Task: model.Task{Minion: "Sheep", Level: 12, Seconds: 86400}, ProfitInstantSell: 30, CostTotal: 900},
		{Task: model.Task{Minion: "Sheep", Level: 11, Seconds: 86400}, ProfitInstantSell: 20, CostTotal: 100},
	}
	d := Deps{Catalog: cat, Results: results}
	if sim {
		d.Simulator = stubSim{}
	}
	return NewRouter(d)
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResults(t *testing.T) {
	r := newTestRouter(t, false)
	tests := []struct {
		target    string
		wantTotal int
		wantFirst int64
	}{
		{"/api/v1/results", 3, 30},
		{"/api/v1/results?seconds=86400&order=asc", 2, 20},
		{"/api/v1/results?max_cost=500", 2, 20},
		{"/api/v1/results?minion=cow", 0, 0},
		{"/api/v1/results?limit=1&offset=1", 3, 20},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status %d: %s", w.Code, w.Body)
			}
			var resp models.ResultsResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", resp.Total, tt.wantTotal)
			}
			if tt.wantTotal > 0 && resp.Results[0].ProfitInstantSell != tt.wantFirst {
				t.Errorf("first = %+v", resp.Results[0])
			}
		})
	}
}

func TestResultsRejectsBadQueries(t *testing.T) {
	r := newTestRouter(t, false)
	for _, target := range []string{
		"/api/v1/results?sort=colour",
		"/api/v1/results?order=sideways",
		"/api/v1/results?seconds=one",
		"/api/v1/results?limit=-1",
	} {
		if w := do(t, r, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", target, w.Code)
		}
	}
}

func TestSummary(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(t, r, http.MethodGet, "/api/v1/results/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp models.SummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Summaries) != 2 || resp.Summaries[1].Max != 30 {
		t.Errorf("summaries = %+v", resp.Summaries)
	}
}

func TestCatalog(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(t, r, http.MethodGet, "/api/v1/catalog/hoppers", nil)
	var resp models.CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK || resp.Count != 2 {
		t.Errorf("status %d, %+v", w.Code, resp)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/catalog/pets", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown kind: status %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/minions/Sheep", nil); w.Code != http.StatusOK {
		t.Errorf("minion: status %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/minions/Unicorn", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown minion: status %d", w.Code)
	}
}

func TestSimulate(t *testing.T) {
	r := newTestRouter(t, true)
	task := model.Task{Minion: "Sheep", Level: 11, Seconds: 3600}

	w := do(t, r, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{Task: task})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	var res model.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.ProfitInstantSell != 1234 || res.RawDrops != nil || res.APRInstantSell.Defined {
		t.Errorf("result = %+v", res)
	}

	w = do(t, r, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{Task: task, IncludeBulk: true})
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.RawDrops["Mutton"] != 10 {
		t.Errorf("bulk maps missing: %+v", res)
	}

	tests := []struct {
		fuel string
		want int
		code string
	}{
		{"Broken", http.StatusBadRequest, "INVALID_TASK"},
		{"Priceless", http.StatusUnprocessableEntity, "PRICE_UNAVAILABLE"},
		{"Throttled", http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
	}
	for _, tt := range tests {
		bad := task
		bad.Fuel = tt.fuel
		w := do(t, r, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{Task: bad})
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if w.Code != tt.want || resp.Error.Code != tt.code {
			t.Errorf("%s: status %d code %q", tt.fuel, w.Code, resp.Error.Code)
		}
	}
}

func TestSimulateWithoutPrices(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(t, r, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/results", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight has no Access-Control-Allow-Origin")
	}
}

func TestStaticFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>minions</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRouter(Deps{Catalog: cat, StaticDir: dir})

	w := do(t, r, http.MethodGet, "/results/sheep", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "minions") {
		t.Errorf("page route = %d %q, want index.html", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/v1/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown api route = %d, want 404", w.Code)
	}
}
