package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/goal"
	"github.com/ricardofontes/goalvault/internal/ledger"
	"github.com/ricardofontes/goalvault/internal/reserve"
	"github.com/ricardofontes/goalvault/internal/vault"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/currencies", h.currencies)
	r.Get("/{id}", h.get)
	r.Post("/{id}/deposits", h.deposit)
	r.Post("/{id}/withdrawal", h.withdraw)
	r.Post("/{id}/early-withdrawal", h.withdrawEarly)
	r.Patch("/{id}/donation", h.setDonation)
}

func goalID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeError maps the service's sentinel errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, goal.ErrUnauthorized), errors.Is(err, goal.ErrAdminOnly):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, goal.ErrGoalNotActive),
		errors.Is(err, goal.ErrGoalNotCompleted),
		errors.Is(err, goal.ErrNoPosition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, goal.ErrCurrencyNotSupported),
		errors.Is(err, goal.ErrInvalidDuration),
		errors.Is(err, goal.ErrInvalidPercentage),
		errors.Is(err, goal.ErrVaultNotConfigured),
		errors.Is(err, goal.ErrZeroAmount),
		errors.Is(err, vault.ErrZeroAmount),
		errors.Is(err, vault.ErrZeroShares):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, reserve.ErrInsufficientLiquidity):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("goal request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type createGoalRequest struct {
	Currency     string    `json:"currency"`
	Mode         goal.Mode `json:"mode"`
	Target       int64     `json:"target"`
	DurationDays int64     `json:"duration_days"`
	DonationBps  int64     `json:"donation_bps"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.CreateGoal(r.Context(), caller, req.Currency, req.Mode,
		req.Target, time.Duration(req.DurationDays)*24*time.Hour, req.DonationBps)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	goals, err := h.svc.GetUserGoals(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(goals)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := goalID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.GetGoalDetails(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDetailsResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := goalID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Deposit(r.Context(), caller, id, req.Amount); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := goalID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.WithdrawCompleted(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) withdrawEarly(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := goalID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.WithdrawEarly(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setDonationRequest struct {
	DonationBps int64 `json:"donation_bps"`
}

func (h *Handler) setDonation(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := goalID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetDonationPercentage(r.Context(), caller, id, req.DonationBps); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.svc.GetSupportedCurrencies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string][]string{"currencies": currencies}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
