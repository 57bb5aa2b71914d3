package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mystery-message/internal/transport/http/respond"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "action") == "ping" {
		respond.OK(w, http.StatusOK, respond.Envelope{Message: "pong"})
		return
	}
	respond.Error(w, http.StatusBadRequest, "unknown action")
}
