package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/transport/http/respond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) Register(ctx context.Context, req domain.SignUpRequest) (*domain.RegistrationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.RegistrationResult)
	return res, args.Error(1)
}
func (m *mockAccountSvc) VerifyAccount(ctx context.Context, req domain.VerifyCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAccountSvc) RequestPasswordReset(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}
func (m *mockAccountSvc) ResetPassword(ctx context.Context, req domain.ResetConfirmRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAccountSvc) CheckUsername(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}
func (m *mockAccountSvc) SignIn(ctx context.Context, req domain.SignInRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}

// --- helpers ---

func jsonReq(t *testing.T, method, target string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return httptest.NewRequest(method, target, bytes.NewReader(body))
}

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

var validSignUp = domain.SignUpRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"}

// --- SignUp ---

func TestSignUp_InvalidBody(t *testing.T) {
	h := NewAccountHandler(&mockAccountSvc{})
	rr := httptest.NewRecorder()
	h.SignUp(rr, httptest.NewRequest(http.MethodPost, "/api/sign-up", bytes.NewBufferString("not-json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignUp_ValidationFailure(t *testing.T) {
	svc := &mockAccountSvc{}
	h := NewAccountHandler(svc)
	cases := []domain.SignUpRequest{
		{Username: "al", Email: "alice@x.com", Password: "secret1"},
		{Username: "alice!", Email: "alice@x.com", Password: "secret1"},
		{Username: "alice", Email: "not-an-email", Password: "secret1"},
		{Username: "alice", Email: "alice@x.com", Password: "123"},
	}
	for _, req := range cases {
		rr := httptest.NewRecorder()
		h.SignUp(rr, jsonReq(t, http.MethodPost, "/api/sign-up", req))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "%+v", req)
		assert.False(t, decodeEnvelope(t, rr).Success)
	}
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSignUp_Created(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("Register", mock.Anything, validSignUp).Return(&domain.RegistrationResult{Username: "alice"}, nil)

	rr := httptest.NewRecorder()
	NewAccountHandler(svc).SignUp(rr, jsonReq(t, http.MethodPost, "/api/sign-up", validSignUp))

	assert.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "alice", env.Username)
}

func TestSignUp_ReusedReturnsStoredUsername(t *testing.T) {
	req := domain.SignUpRequest{Username: "alice_two", Email: "alice@x.com", Password: "secret1"}
	svc := &mockAccountSvc{}
	svc.On("Register", mock.Anything, req).Return(&domain.RegistrationResult{Username: "alice", Reused: true}, nil)

	rr := httptest.NewRecorder()
	NewAccountHandler(svc).SignUp(rr, jsonReq(t, http.MethodPost, "/api/sign-up", req))

	assert.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "alice", env.Username)
	assert.Contains(t, env.Message, "alice")
}

func TestSignUp_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrUsernameTaken, http.StatusBadRequest},
		{errors.Join(domain.ErrDeliveryFailure, errors.New("smtp")), http.StatusInternalServerError},
		{errors.New("dynamo throttled"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &mockAccountSvc{}
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, tc.err)

		rr := httptest.NewRecorder()
		NewAccountHandler(svc).SignUp(rr, jsonReq(t, http.MethodPost, "/api/sign-up", validSignUp))
		assert.Equal(t, tc.want, rr.Code, tc.err.Error())
	}
}

// --- VerifyCode ---

func TestVerifyCode_StatusByOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidCode, http.StatusBadRequest},
		{domain.ErrCodeExpired, http.StatusGone},
	}
	req := domain.VerifyCodeRequest{Username: "alice", Code: "123456"}
	for _, tc := range cases {
		svc := &mockAccountSvc{}
		svc.On("VerifyAccount", mock.Anything, req).Return(tc.err)

		rr := httptest.NewRecorder()
		NewAccountHandler(svc).VerifyCode(rr, jsonReq(t, http.MethodPost, "/api/verify-code", req))
		assert.Equal(t, tc.want, rr.Code)
	}
}

func TestVerifyCode_RejectsMalformedCode(t *testing.T) {
	svc := &mockAccountSvc{}
	for _, code := range []string{"12345", "1234567", "abcdef"} {
		rr := httptest.NewRecorder()
		NewAccountHandler(svc).VerifyCode(rr, jsonReq(t, http.MethodPost, "/api/verify-code",
			domain.VerifyCodeRequest{Username: "alice", Code: code}))
		assert.Equal(t, http.StatusBadRequest, rr.Code, code)
	}
	svc.AssertNotCalled(t, "VerifyAccount", mock.Anything, mock.Anything)
}

// --- PasswordReset ---

func TestPasswordReset_Request(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("RequestPasswordReset", mock.Anything, "alice@x.com").Return(nil)

	r := withChiParam(jsonReq(t, http.MethodPost, "/api/password-reset/request", domain.ResetRequest{Identifier: "alice@x.com"}), "action", "request")
	rr := httptest.NewRecorder()
	NewAccountHandler(svc).PasswordReset(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestPasswordReset_ConfirmExpired(t *testing.T) {
	req := domain.ResetConfirmRequest{Username: "alice", Code: "654321", NewPassword: "brand-new"}
	svc := &mockAccountSvc{}
	svc.On("ResetPassword", mock.Anything, req).Return(domain.ErrCodeExpired)

	r := withChiParam(jsonReq(t, http.MethodPost, "/api/password-reset/confirm", req), "action", "confirm")
	rr := httptest.NewRecorder()
	NewAccountHandler(svc).PasswordReset(rr, r)

	assert.Equal(t, http.StatusGone, rr.Code)
	assert.Equal(t, domain.ErrCodeExpired.Error(), decodeEnvelope(t, rr).Message)
}

func TestPasswordReset_UnknownAction(t *testing.T) {
	r := withChiParam(httptest.NewRequest(http.MethodPost, "/api/password-reset/x", nil), "action", "x")
	rr := httptest.NewRecorder()
	NewAccountHandler(&mockAccountSvc{}).PasswordReset(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- CheckUsername ---

func TestCheckUsername(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("CheckUsername", mock.Anything, "free_name").Return(nil)
	svc.On("CheckUsername", mock.Anything, "alice").Return(domain.ErrUsernameTaken)
	h := NewAccountHandler(svc)

	rr := httptest.NewRecorder()
	h.CheckUsername(rr, httptest.NewRequest(http.MethodGet, "/api/check-unique-username?username=free_name", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Username is unique", decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	h.CheckUsername(rr, httptest.NewRequest(http.MethodGet, "/api/check-unique-username?username=alice", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- SignIn ---

func TestSignIn(t *testing.T) {
	req := domain.SignInRequest{Identifier: "alice", Password: "secret1"}
	svc := &mockAccountSvc{}
	svc.On("SignIn", mock.Anything, req).Return("tok", &domain.User{Username: "alice"}, nil)

	rr := httptest.NewRecorder()
	NewAccountHandler(svc).SignIn(rr, jsonReq(t, http.MethodPost, "/api/sign-in", req))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "tok", env.Token)
	assert.Equal(t, "alice", env.Username)
}

func TestSignIn_ErrorMapping(t *testing.T) {
	cases := map[error]int{
		domain.ErrNotFound:     http.StatusNotFound,
		domain.ErrNotVerified:  http.StatusForbidden,
		domain.ErrUnauthorized: http.StatusUnauthorized,
	}
	for err, want := range cases {
		svc := &mockAccountSvc{}
		svc.On("SignIn", mock.Anything, mock.Anything).Return("", nil, err)

		rr := httptest.NewRecorder()
		NewAccountHandler(svc).SignIn(rr, jsonReq(t, http.MethodPost, "/api/sign-in", domain.SignInRequest{Identifier: "a", Password: "b"}))
		assert.Equal(t, want, rr.Code, err.Error())
	}
}
