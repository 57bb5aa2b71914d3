package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/transport/http/respond"
)

var errorStatus = []struct {
	err    error
	status int
	// verbose responses carry the wrapped message instead of the sentinel's
	verbose bool
}{
	{domain.ErrNotFound, http.StatusNotFound, true},
	{domain.ErrBadRequest, http.StatusBadRequest, true},
	{domain.ErrInvalidCode, http.StatusBadRequest, false},
	{domain.ErrUsernameTaken, http.StatusBadRequest, false},
	{domain.ErrEmailTaken, http.StatusBadRequest, false},
	{domain.ErrCodeExpired, http.StatusGone, false},
	{domain.ErrUnauthorized, http.StatusUnauthorized, false},
	{domain.ErrNotVerified, http.StatusForbidden, false},
	{domain.ErrNotAcceptingMessages, http.StatusForbidden, false},
	{domain.ErrForbidden, http.StatusForbidden, false},
	{domain.ErrConflict, http.StatusConflict, true},
}

// httpError maps a service error to its status code. Anything unmapped is
// logged and reported as a 500 without leaking the cause.
func httpError(w http.ResponseWriter, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			msg := m.err.Error()
			if m.verbose {
				msg = err.Error()
			}
			respond.Error(w, m.status, msg)
			return
		}
	}
	if errors.Is(err, domain.ErrDeliveryFailure) {
		slog.Error("code delivery failed", "err", err)
		respond.Error(w, http.StatusInternalServerError, domain.ErrDeliveryFailure.Error())
		return
	}
	slog.Error("request failed", "err", err)
	respond.Error(w, http.StatusInternalServerError, "internal server error")
}
