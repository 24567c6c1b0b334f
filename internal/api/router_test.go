package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/pointledger/pointledger/internal/api/httpx"
	"github.com/pointledger/pointledger/internal/config"
	"github.com/pointledger/pointledger/internal/logger"
	"github.com/pointledger/pointledger/internal/models"
	"github.com/pointledger/pointledger/internal/repository/memory"
	"github.com/pointledger/pointledger/internal/services"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repos := memory.NewRepositories(nil)
	svc := services.NewPointService(repos.Balances, repos.Histories, logger.Discard())
	return NewRouter(config.Config{Env: "test"}, svc)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestGetPointUnknownUser(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/point/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}
	p := decode[models.UserPoint](t, rec)
	if p.ID != 1 || p.Points != 0 {
		t.Errorf("body: got %+v", p)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}

func TestChargeUseAndHistories(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPatch, "/point/1/charge", "1000")
	if rec.Code != http.StatusOK {
		t.Fatalf("charge: got %d: %s", rec.Code, rec.Body.String())
	}
	if p := decode[models.UserPoint](t, rec); p.Points != 1000 {
		t.Errorf("charge: got %d points, want 1000", p.Points)
	}

	rec = do(t, h, http.MethodPatch, "/point/1/use", `{"amount": 400}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("use: got %d: %s", rec.Code, rec.Body.String())
	}
	if p := decode[models.UserPoint](t, rec); p.Points != 600 {
		t.Errorf("use: got %d points, want 600", p.Points)
	}

	rec = do(t, h, http.MethodGet, "/point/1/histories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("histories: got %d", rec.Code)
	}
	hs := decode[[]models.PointHistory](t, rec)
	if len(hs) != 2 || hs[0].Type != models.TxnCharge || hs[1].Type != models.TxnUse || hs[1].Amount != 400 {
		t.Errorf("histories: got %+v", hs)
	}
}

func TestEmptyHistoriesIsArray(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/point/9/histories", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body: got %q, want []", got)
	}
}

func TestErrorMapping(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPatch, "/point/2/charge", "1000000")
	do(t, h, http.MethodPatch, "/point/2/charge", "1000000")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/point/abc", "", http.StatusBadRequest, "invalid_input"},
		{"zero id", http.MethodGet, "/point/0/histories", "", http.StatusBadRequest, "invalid_input"},
		{"negative amount", http.MethodPatch, "/point/1/charge", "-5", http.StatusBadRequest, "invalid_input"},
		{"over ceiling", http.MethodPatch, "/point/1/use", "1000001", http.StatusBadRequest, "invalid_input"},
		{"fractional", http.MethodPatch, "/point/1/charge", "1.5", http.StatusBadRequest, "invalid_input"},
		{"garbage body", http.MethodPatch, "/point/1/charge", "{", http.StatusBadRequest, "invalid_input"},
		{"no amount field", http.MethodPatch, "/point/1/charge", `{"points": 3}`, http.StatusBadRequest, "invalid_input"},
		{"limit", http.MethodPatch, "/point/2/charge", "1", http.StatusConflict, "balance_limit_exceeded"},
		{"insufficient", http.MethodPatch, "/point/3/use", "1", http.StatusConflict, "insufficient_balance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status: got %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if e := decode[httpx.APIError](t, rec); e.Code != tc.code {
				t.Errorf("code: got %q, want %q", e.Code, tc.code)
			}
		})
	}

	// rejections left user 2 untouched
	if p := decode[models.UserPoint](t, do(t, h, http.MethodGet, "/point/2", "")); p.Points != models.MaxBalance {
		t.Errorf("user 2: got %d, want %d", p.Points, models.MaxBalance)
	}
}

func TestConcurrentChargeOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			do(t, h, http.MethodPatch, "/point/1/charge", "100")
		}()
	}
	wg.Wait()
	p := decode[models.UserPoint](t, do(t, h, http.MethodGet, "/point/1", ""))
	if p.Points != n*100 {
		t.Errorf("balance: got %d, want %d", p.Points, n*100)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)
	if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health: got %d %q", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Errorf("metrics: got %d", rec.Code)
	}
}
