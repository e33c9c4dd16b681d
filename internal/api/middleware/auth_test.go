package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

func TestBearer_ValidHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Bearer()(func(c echo.Context) error {
		called = true
		if c.Get(TokenKey) != "abc.def.ghi" {
			t.Fatalf("token not set, got %v", c.Get(TokenKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBearer_SchemeIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer tok")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Bearer()(func(c echo.Context) error {
		if c.Get(TokenKey) != "tok" {
			t.Fatalf("token not set")
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestBearer_Rejected(t *testing.T) {
	tests := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Token abc",
		"scheme only":      "Bearer",
		"empty credential": "Bearer   ",
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Bearer()(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrMissingToken) {
				t.Fatalf("expected ErrMissingToken, got %v", err)
			}
		})
	}
}
