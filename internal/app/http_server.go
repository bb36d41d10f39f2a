package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
	"shopclock/internal/usecase"
)

// HTTPServer returns a configured http.Server exposing the attendance
// and payroll API. Call ListenAndServe on it in a goroutine and
// Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/clock", a.handleClock)
	mux.HandleFunc("GET /api/clock/status", a.handleClockStatus)
	mux.HandleFunc("GET /api/timesheet", a.handleTimesheet)
	mux.HandleFunc("POST /api/timesheet/correct", a.handleCorrect)
	mux.HandleFunc("GET /api/payroll", a.handlePayroll)
	mux.HandleFunc("PUT /api/wage", a.handleWage)
	mux.HandleFunc("GET /api/purchases", a.handleGetPurchases)
	mux.HandleFunc("PUT /api/purchases", a.handlePutPurchases)
	mux.HandleFunc("POST /api/payments", a.handlePayment)
	mux.HandleFunc("GET /api/summary", a.handleSummary)

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

func (a *App) handleClock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
		Out  bool   `json:"out"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.User == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	kind := domain.ClockIn
	if req.Out {
		kind = domain.ClockOut
	}
	at, err := a.Clock.Punch(r.Context(), req.User, kind)
	if err != nil {
		if errors.Is(err, ports.ErrAlreadyClockedIn) || errors.Is(err, ports.ErrNotClockedIn) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clocked_in": kind == domain.ClockIn,
		"timestamp":  at.Unix(),
	})
}

func (a *App) handleClockStatus(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	clockedIn, err := a.Clock.Status(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clocked_in": clockedIn})
}

func (a *App) handleTimesheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, ok := a.parseRange(w, q.Get("from"), q.Get("to"))
	if !ok {
		return
	}
	includeOpen := q.Get("open") == "true"
	shifts, err := a.Timesheet.Timesheets(r.Context(), from, to, includeOpen)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user := q.Get("user"); user != "" {
		only := make(map[string][]domain.Shift)
		if s, found := shifts[user]; found {
			only[user] = s
		}
		shifts = only
	}
	writeJSON(w, http.StatusOK, map[string]any{"timesheets": shifts})
}

func (a *App) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req usecase.Correction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.Correction.Apply(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (a *App) handlePayroll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, ok := a.parseRange(w, q.Get("from"), q.Get("to"))
	if !ok {
		return
	}
	entries, err := a.Timesheet.Payroll(r.Context(), from, to, q.Get("open") == "true")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payroll": entries})
}

func (a *App) handleWage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		WageCents int64  `json:"wage_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.WageCents < 0 {
		writeError(w, http.StatusBadRequest, "wage_cents must not be negative")
		return
	}
	if err := a.Wages.SetWage(r.Context(), req.Name, req.WageCents); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": req.Name, "wage_cents": req.WageCents})
}

func (a *App) handleGetPurchases(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !validMonth(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	items, err := a.Ledger.Purchases(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []domain.PurchaseItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"purchases": items})
}

func (a *App) handlePutPurchases(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !validMonth(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	var req struct {
		Purchases []domain.PurchaseItem `json:"purchases"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.Ledger.ReplacePurchases(r.Context(), month, req.Purchases); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (a *App) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must be positive")
		return
	}
	if err := a.Ledger.RecordPayment(r.Context(), req.AmountCents, time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	t, err := time.Parse("2006-01", month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	s, err := a.Summary.Month(r.Context(), t.Year(), t.Month())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// parseRange reads from/to query values (RFC3339 or YYYY-MM-DD, the
// date-only end form being inclusive). Defaults to the last 24 hours.
func (a *App) parseRange(w http.ResponseWriter, fromStr, toStr string) (time.Time, time.Time, bool) {
	now := time.Now().In(a.loc)
	to, err := parseEnd(toStr, now, a.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to, expected RFC3339 or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	from, err := parseStart(fromStr, to.Add(-24*time.Hour), a.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from, expected RFC3339 or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "error": msg})
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
