package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{currency}", h.balance)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	currency := chi.URLParam(r, "currency")

	balance, err := h.svc.Balance(r.Context(), ledger.UserAccount(caller), currency)
	if err != nil {
		slog.Error("balance lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]any{"currency": currency, "balance": balance}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
