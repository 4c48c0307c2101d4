package faucet

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/faucet"
)

type Handler struct {
	svc *faucet.Service
}

func NewHandler(svc *faucet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{currency}", h.dispense)
}

func (h *Handler) dispense(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	currency := chi.URLParam(r, "currency")

	amount, err := h.svc.Dispense(r.Context(), caller, currency)
	if err != nil {
		switch {
		case errors.Is(err, faucet.ErrRateLimited):
			http.Error(w, err.Error(), http.StatusTooManyRequests)
		case errors.Is(err, faucet.ErrInvalidCurrency):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("faucet request failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]any{"currency": currency, "amount": amount}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
