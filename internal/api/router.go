package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pointledger/pointledger/internal/api/httpx"
	"github.com/pointledger/pointledger/internal/api/validate"
	"github.com/pointledger/pointledger/internal/config"
	"github.com/pointledger/pointledger/internal/metrics"
	"github.com/pointledger/pointledger/internal/middleware"
	"github.com/pointledger/pointledger/internal/models"
)

// Ledger is what the router needs from the point service.
type Ledger interface {
	GetBalance(id int64) models.UserPoint
	GetHistory(id int64) []models.PointHistory
	Charge(id, amount int64) (models.UserPoint, error)
	Use(id, amount int64) (models.UserPoint, error)
}

const maxBodyBytes = 1 << 10

func NewRouter(cfg config.Config, l Ledger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/point/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			id, err := userID(r)
			if err != nil {
				httpx.WriteErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, l.GetBalance(id))
		})

		r.Get("/histories", func(w http.ResponseWriter, r *http.Request) {
			id, err := userID(r)
			if err != nil {
				httpx.WriteErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, l.GetHistory(id))
		})

		r.Patch("/charge", mutate(l.Charge))
		r.Patch("/use", mutate(l.Use))
	})

	return r
}

// mutate wraps Charge or Use: validate, call, map the result.
func mutate(op func(id, amount int64) (models.UserPoint, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ferr := validate.Int("id", chi.URLParam(r, "id"))
		amount, aerr := decodeAmount(r.Body)
		if err := validate.Collect(ferr, aerr); err != nil {
			httpx.WriteErr(w, err)
			return
		}
		if err := validate.PointRequest(id, amount); err != nil {
			httpx.WriteErr(w, err)
			return
		}
		p, err := op(id, amount)
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func userID(r *http.Request) (int64, error) {
	id, ferr := validate.Int("id", chi.URLParam(r, "id"))
	if ferr != nil {
		return 0, validate.Collect(ferr)
	}
	if err := validate.UserID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// decodeAmount accepts either a bare JSON integer or {"amount": n}.
func decodeAmount(body io.Reader) (int64, *validate.ErrField) {
	bad := &validate.ErrField{Field: "amount", Msg: "body must be an integer or {\"amount\": integer}"}
	var raw json.RawMessage
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&raw); err != nil {
		return 0, bad
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var req struct {
		Amount *int64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &req); err == nil && req.Amount != nil {
		return *req.Amount, nil
	}
	return 0, bad
}
