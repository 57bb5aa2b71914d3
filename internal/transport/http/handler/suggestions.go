package handler

import (
	"net/http"

	"github.com/mystery-message/internal/application/suggestion"
	"github.com/mystery-message/internal/transport/http/respond"
)

type SuggestionHandler struct {
	svc suggestion.Service
}

func NewSuggestionHandler(svc suggestion.Service) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	raw, questions, err := h.svc.Suggest(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: raw, Suggestions: questions})
}
