package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mystery-message/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestError_WritesFailureEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusTooManyRequests, "too many requests")

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"too many requests"}`, rr.Body.String())
}

func TestOK_EmptyMessagesKeepsKey(t *testing.T) {
	rr := httptest.NewRecorder()
	msgs := []domain.Message{}
	OK(rr, http.StatusOK, Envelope{Message: "ok", Messages: &msgs})

	assert.JSONEq(t, `{"success":true,"message":"ok","messages":[]}`, rr.Body.String())
}

func TestOK_OmitsUnsetFields(t *testing.T) {
	rr := httptest.NewRecorder()
	OK(rr, http.StatusOK, Envelope{Message: "pong"})

	assert.JSONEq(t, `{"success":true,"message":"pong"}`, rr.Body.String())
}
