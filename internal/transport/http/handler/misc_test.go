package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mystery-message/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSuggestionSvc struct{ mock.Mock }

func (m *mockSuggestionSvc) Suggest(ctx context.Context) (string, []string, error) {
	args := m.Called(ctx)
	qs, _ := args.Get(1).([]string)
	return args.String(0), qs, args.Error(2)
}

func TestSuggest(t *testing.T) {
	svc := &mockSuggestionSvc{}
	svc.On("Suggest", mock.Anything).Return("a||b||c", []string{"a", "b", "c"}, nil)

	rr := httptest.NewRecorder()
	NewSuggestionHandler(svc).Suggest(rr, httptest.NewRequest(http.MethodGet, "/api/suggest-messages", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "a||b||c", env.Message)
	assert.Equal(t, []string{"a", "b", "c"}, env.Suggestions)
}

func TestSuggest_UpstreamFailure(t *testing.T) {
	svc := &mockSuggestionSvc{}
	svc.On("Suggest", mock.Anything).Return("", nil, errors.New("llm status 503"))

	rr := httptest.NewRecorder()
	NewSuggestionHandler(svc).Suggest(rr, httptest.NewRequest(http.MethodGet, "/api/suggest-messages", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decodeEnvelope(t, rr).Message)
}

func TestPing(t *testing.T) {
	h := NewHealthHandler()

	rr := httptest.NewRecorder()
	h.Ping(rr, withChiParam(httptest.NewRequest(http.MethodGet, "/api/health-check/ping", nil), "action", "ping"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	h.Ping(rr, withChiParam(httptest.NewRequest(http.MethodGet, "/api/health-check/x", nil), "action", "x"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHTTPError_Messages(t *testing.T) {
	rr := httptest.NewRecorder()
	httpError(rr, fmt.Errorf("register bob: %w", domain.ErrUsernameTaken))
	assert.Equal(t, domain.ErrUsernameTaken.Error(), decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	httpError(rr, fmt.Errorf("message m1 not found: %w", domain.ErrNotFound))
	assert.Equal(t, "message m1 not found: not found", decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	httpError(rr, fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, "resend: 401 invalid key"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, domain.ErrDeliveryFailure.Error(), decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	httpError(rr, errors.New("dynamo: connection refused"))
	assert.NotContains(t, decodeEnvelope(t, rr).Message, "dynamo")
}
