package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ricardofontes/goalvault/internal/auth"
)

// Handler issues dev tokens. There is no user registry; any uuid gets a
// token, and the configured admin id gets the admin flag.
type Handler struct {
	svc     *auth.Service
	adminID uuid.UUID
}

func NewHandler(svc *auth.Service, adminID uuid.UUID) *Handler {
	return &Handler{svc: svc, adminID: adminID}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/token", h.token)
}

type tokenRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.UserID == uuid.Nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	token, err := h.svc.GenerateToken(req.UserID, req.UserID == h.adminID, time.Now())
	if err != nil {
		slog.Error("token generation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"token": token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
