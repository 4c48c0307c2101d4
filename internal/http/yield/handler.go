package yield

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/yield"
)

type Handler struct {
	svc *yield.Service
}

func NewHandler(svc *yield.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/split", h.split)
	r.Get("/stats/{currency}", h.globalStats)
	r.Get("/donations/{currency}", h.myDonations)
	r.Get("/whitelist/{currency}", h.whitelisted)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		r.Post("/route", h.route)
		r.Post("/route/batch", h.batchRoute)
		r.Put("/whitelist/{currency}", h.setWhitelist)
		r.Patch("/paused", h.setPaused)
		r.Patch("/donation-recipient", h.setRecipient)
		r.Post("/rescue", h.rescue)
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, yield.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, yield.ErrPaused),
		errors.Is(err, yield.ErrUnfunded):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, yield.ErrNotWhitelisted),
		errors.Is(err, yield.ErrInvalidPercentage),
		errors.Is(err, yield.ErrZeroAmount),
		errors.Is(err, yield.ErrArrayLengthMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("yield request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// split previews CalculateSplit without touching any state.
func (h *Handler) split(w http.ResponseWriter, r *http.Request) {
	total, err := strconv.ParseInt(r.URL.Query().Get("total"), 10, 64)
	if err != nil {
		http.Error(w, "invalid total", http.StatusBadRequest)
		return
	}

	bps, err := strconv.ParseInt(r.URL.Query().Get("bps"), 10, 64)
	if err != nil || bps < 0 || bps > yield.MaxDonationBps {
		http.Error(w, "invalid bps", http.StatusBadRequest)
		return
	}

	dep, don := yield.CalculateSplit(total, bps)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{
		"depositor_amount": dep,
		"donation_amount":  don,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type routeRequest struct {
	Currency    string    `json:"currency"`
	TotalYield  int64     `json:"total_yield"`
	DonationBps int64     `json:"donation_bps"`
	Depositor   uuid.UUID `json:"depositor"`
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dep, don, err := h.svc.RouteYield(r.Context(), req.Currency, req.TotalYield, req.DonationBps, req.Depositor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{
		"depositor_amount": dep,
		"donation_amount":  don,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) globalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GlobalStats(r.Context(), chi.URLParam(r, "currency"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(stats); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) myDonations(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	currency := chi.URLParam(r, "currency")

	total, err := h.svc.TotalDonationsByUser(r.Context(), caller, currency)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]any{"currency": currency, "total_donated": total}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) whitelisted(w http.ResponseWriter, r *http.Request) {
	allowed, err := h.svc.IsTokenWhitelisted(r.Context(), chi.URLParam(r, "currency"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]bool{"whitelisted": allowed}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type batchRouteRequest struct {
	Currencies  []string    `json:"currencies"`
	TotalYields []int64     `json:"total_yields"`
	DonationBps []int64     `json:"donation_bps"`
	Depositors  []uuid.UUID `json:"depositors"`
}

type batchRouteItemResponse struct {
	DepositorAmount int64  `json:"depositor_amount"`
	DonationAmount  int64  `json:"donation_amount"`
	Error           string `json:"error,omitempty"`
}

func (h *Handler) batchRoute(w http.ResponseWriter, r *http.Request) {
	var req batchRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.svc.BatchRouteYield(r.Context(), req.Currencies, req.TotalYields, req.DonationBps, req.Depositors)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]batchRouteItemResponse, len(results))

	for i, res := range results {
		resp[i] = batchRouteItemResponse{
			DepositorAmount: res.DepositorAmount,
			DonationAmount:  res.DonationAmount,
		}

		if res.Err != nil {
			resp[i].Error = res.Err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setWhitelistRequest struct {
	Allowed bool `json:"allowed"`
}

func (h *Handler) setWhitelist(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req setWhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetTokenWhitelist(r.Context(), caller, chi.URLParam(r, "currency"), req.Allowed); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setPausedRequest struct {
	Paused bool `json:"paused"`
}

func (h *Handler) setPaused(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req setPausedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetPaused(r.Context(), caller, req.Paused); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setRecipientRequest struct {
	Account string `json:"account"`
}

func (h *Handler) setRecipient(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req setRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetDonationRecipient(r.Context(), caller, req.Account); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type rescueRequest struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	To       string `json:"to"`
}

func (h *Handler) rescue(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req rescueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.RescueTokens(r.Context(), caller, req.Currency, req.Amount, req.To); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
