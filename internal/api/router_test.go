package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletmock/wallet-api/internal/core/domain"
	"github.com/walletmock/wallet-api/internal/core/ports"
)

type stubAuth struct {
	registerErr error
	loginToken  string
	loginErr    error
}

func (s *stubAuth) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "u1", Name: in.Name, Email: in.Email}, nil
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (string, error) {
	return s.loginToken, s.loginErr
}

type stubWallet struct {
	tokens  map[string]string
	entries []*domain.Entry
	err     error
}

func (s *stubWallet) RecordEntry(_ context.Context, token string, in ports.EntryInput) (*domain.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.tokens[token]; !ok {
		return nil, domain.ErrUnauthorized
	}
	e := &domain.Entry{ID: "e", Amount: domain.CoerceAmount(in.Amount), Description: in.Description, Type: in.Type, Date: "16/10"}
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *stubWallet) ListWallet(_ context.Context, token string) ([]*domain.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.tokens[token]; !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.entries, nil
}

func newTestRouter(auth *stubAuth, wallet *stubWallet) http.Handler {
	return NewRouter(Dependencies{
		AuthService:   auth,
		WalletService: wallet,
		Registry:      prometheus.NewRegistry(),
		Log:           zerolog.Nop(),
	})
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var obj map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &obj)
	return rec, obj
}

func TestRouter_SignUpStatuses(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		body    string
		status  int
		message string
	}{
		{name: "created", body: `{"name":"ana"}`, status: http.StatusCreated},
		{name: "name exists", err: domain.ErrNameExists, body: `{}`, status: http.StatusConflict, message: "name exists"},
		{name: "email exists", err: domain.ErrEmailExists, body: `{}`, status: http.StatusConflict, message: "email exists"},
		{
			name:    "validation",
			err:     &domain.ValidationError{Violations: []domain.FieldViolation{{Field: "name", Message: "name is required"}, {Field: "email", Message: "email is required"}}},
			body:    `{}`,
			status:  http.StatusUnprocessableEntity,
			message: "validation failed",
		},
		{name: "store down", err: errors.New("connection refused"), body: `{}`, status: http.StatusInternalServerError, message: "internal server error"},
		{name: "bad json", body: `{`, status: http.StatusBadRequest, message: "invalid payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&stubAuth{registerErr: tt.err}, &stubWallet{})

			rec, body := do(t, h, http.MethodPost, "/sign-up", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}
}

func TestRouter_ValidationDetailsListEveryField(t *testing.T) {
	verr := &domain.ValidationError{Violations: []domain.FieldViolation{
		{Field: "name", Message: "name must be at least 3 characters long"},
		{Field: "password_confirmation", Message: "password_confirmation must match password"},
	}}
	h := newTestRouter(&stubAuth{registerErr: verr}, &stubWallet{})

	rec, body := do(t, h, http.MethodPost, "/sign-up", "", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	details, ok := body["details"].([]any)
	require.True(t, ok, "details missing: %v", body)
	assert.Len(t, details, 2)
}

func TestRouter_SignIn(t *testing.T) {
	h := newTestRouter(&stubAuth{loginToken: "T"}, &stubWallet{})
	rec, body := do(t, h, http.MethodPost, "/sign-in", "", `{"email":"ana@x.com","password":"pass123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", body["token"])

	h = newTestRouter(&stubAuth{loginErr: domain.ErrInvalidCredentials}, &stubWallet{})
	rec, body = do(t, h, http.MethodPost, "/sign-in", "", `{"email":"ana@x.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", body["error"])

	h = newTestRouter(&stubAuth{loginErr: errors.New("login: server selection timeout")}, &stubWallet{})
	rec, _ = do(t, h, http.MethodPost, "/sign-in", "", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_WalletRequiresToken(t *testing.T) {
	h := newTestRouter(&stubAuth{}, &stubWallet{tokens: map[string]string{"T": "u1"}})

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/addEntry"},
		{http.MethodPost, "/SubtractEntry"},
		{http.MethodGet, "/MainPage"},
		{http.MethodGet, "/wallet"},
	} {
		rec, body := do(t, h, route.method, route.path, "", `{"amount":1,"description":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "missing token", body["error"], route.path)

		rec, body = do(t, h, route.method, route.path, "invalid_token", `{"amount":1,"description":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "unauthorized", body["error"], route.path)
	}
}

func TestRouter_WalletScenario(t *testing.T) {
	wallet := &stubWallet{tokens: map[string]string{"T": "u1"}}
	h := newTestRouter(&stubAuth{}, wallet)

	rec, _ := do(t, h, http.MethodGet, "/MainPage", "T", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec, _ = do(t, h, http.MethodPost, "/addEntry", "T", `{"amount":50.5,"description":"salary"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/SubtractEntry", "T", `{"amount":20,"description":"food"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/MainPage", "T", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "50.50", entries[0]["amount"])
	assert.Equal(t, "deposit", entries[0]["type"])
	assert.Equal(t, "20.00", entries[1]["amount"])
	assert.Equal(t, "withdrawal", entries[1]["type"])
}

func TestRouter_WalletInfrastructureFailure(t *testing.T) {
	h := newTestRouter(&stubAuth{}, &stubWallet{err: errors.New("record entry: write concern timeout")})

	rec, body := do(t, h, http.MethodPost, "/addEntry", "T", `{"amount":1,"description":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["error"])
}

func TestRouter_UnknownRouteIsNotFound(t *testing.T) {
	h := newTestRouter(&stubAuth{}, &stubWallet{})

	rec, _ := do(t, h, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(&stubAuth{}, &stubWallet{})

	rec, body := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wallet_requests_total")
}
