package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mystery-message/internal/application/message"
	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/transport/http/middleware"
	"github.com/mystery-message/internal/transport/http/respond"
)

// MessageHandler handles the acceptance flag and the owner's message collection.
type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler { return &MessageHandler{svc: svc} }

func (h *MessageHandler) GetAcceptance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	accepting, err := h.svc.GetAcceptance(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "ok", IsAcceptingMessages: &accepting})
}

func (h *MessageHandler) SetAcceptance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req domain.AcceptMessagesRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.SetAcceptance(r.Context(), claims.UserID, *req.AcceptMessages); err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{
		Message:             "Message acceptance status updated successfully",
		IsAcceptingMessages: req.AcceptMessages,
	})
}

// Send is public: anyone with the profile link may post.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.svc.Send(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusCreated, respond.Envelope{Message: "Message sent successfully"})
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	msgs, err := h.svc.List(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "ok", Messages: &msgs})
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "Message deleted"})
}

func (h *MessageHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	url, err := h.svc.Export(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "Export ready", URL: url})
}
