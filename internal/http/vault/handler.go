package vault

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ricardofontes/goalvault/internal/auth"
	"github.com/ricardofontes/goalvault/internal/reserve"
	"github.com/ricardofontes/goalvault/internal/vault"
)

type Handler struct {
	registry *vault.Registry
}

func NewHandler(registry *vault.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{currency}/{mode}", h.get)
	r.Get("/{currency}/{mode}/apy", h.apy)
	r.Get("/{currency}/{mode}/pending-yield", h.pendingYield)
	r.Post("/{currency}/{mode}/harvest", h.harvest)
	r.Patch("/{currency}/{mode}/donation-recipient", h.setDonationRecipient)
}

func (h *Handler) svc(w http.ResponseWriter, r *http.Request) (*vault.Service, bool) {
	svc, ok := h.registry.Get(chi.URLParam(r, "currency"), chi.URLParam(r, "mode"))
	if !ok {
		http.Error(w, "vault not found", http.StatusNotFound)
		return nil, false
	}

	return svc, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vault.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, vault.ErrZeroAmount),
		errors.Is(err, vault.ErrZeroShares),
		errors.Is(err, vault.ErrInvalidRecipient):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, vault.ErrInsufficientShares):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, reserve.ErrInsufficientLiquidity):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("vault request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	infos := make([]*vault.Info, 0)

	for _, svc := range h.registry.List() {
		info, err := svc.Info(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		infos = append(infos, info)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(infos); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.svc(w, r)
	if !ok {
		return
	}

	info, err := svc.Info(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(info); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) apy(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.svc(w, r)
	if !ok {
		return
	}

	apy, err := svc.CurrentAPY(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]any{"apy_percent": apy}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) pendingYield(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.svc(w, r)
	if !ok {
		return
	}

	pending, err := svc.PendingYield(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{"pending_yield": pending}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// harvest is open to any authenticated caller; the sweep only ever moves
// value to the configured donation recipient.
func (h *Handler) harvest(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.svc(w, r)
	if !ok {
		return
	}

	swept, err := svc.HarvestAndDonate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{"swept": swept}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setRecipientRequest struct {
	Account string `json:"account"`
}

func (h *Handler) setDonationRecipient(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	svc, ok := h.svc(w, r)
	if !ok {
		return
	}

	var req setRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := svc.SetDonationRecipient(r.Context(), caller, req.Account); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
