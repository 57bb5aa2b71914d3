package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mystery-message/internal/application/account"
	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/pkg/validate"
	"github.com/mystery-message/internal/transport/http/respond"
)

// AccountHandler handles registration, verification, password reset and sign-in.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler { return &AccountHandler{svc: svc} }

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	msg := "User registered successfully. Please verify your account."
	if res.Reused {
		msg = "Account already pending verification. A new code was sent; verify as " + res.Username + "."
	}
	respond.OK(w, http.StatusCreated, respond.Envelope{Message: msg, Username: res.Username})
}

func (h *AccountHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.VerifyAccount(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "Account verified successfully"})
}

// PasswordReset dispatches /password-reset/{action}.
func (h *AccountHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req domain.ResetRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.svc.RequestPasswordReset(r.Context(), req.Identifier); err != nil {
			httpError(w, err)
			return
		}
		respond.OK(w, http.StatusOK, respond.Envelope{Message: "Password reset code sent to your email"})
	case "confirm":
		var req domain.ResetConfirmRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.svc.ResetPassword(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		respond.OK(w, http.StatusOK, respond.Envelope{Message: "Password updated successfully"})
	default:
		respond.Error(w, http.StatusBadRequest, "unknown action")
	}
}

func (h *AccountHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CheckUsername(r.Context(), r.URL.Query().Get("username")); err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "Username is unique"})
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	token, u, err := h.svc.SignIn(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, respond.Envelope{Message: "Signed in", Token: token, Username: u.Username})
}

// decode reads and validates a JSON body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
