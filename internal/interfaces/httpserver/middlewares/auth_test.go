package middlewares_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/identity"
	"chat-server/internal/interfaces/httpserver/middlewares"
)

type stubValidator struct {
	claims map[string]*identity.Claims
}

func (s *stubValidator) Validate(ctx context.Context, token string) (*identity.Claims, error) {
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type noGuests struct{}

func (noGuests) CreateGuest(ctx context.Context) (*identity.TokenSet, error) {
	return nil, errors.New("unavailable")
}

func newTestEngine(validator identity.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	resolver := identity.NewResolver(validator, noGuests{})
	engine.Use(middlewares.AuthMiddleware(resolver, zerolog.Nop()))
	engine.GET("/protected", func(c *gin.Context) {
		principal, ok := middlewares.PrincipalFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": principal.Subject})
	})
	return engine
}

func TestAuthMiddleware_MissingTokenIsUniform401(t *testing.T) {
	engine := newTestEngine(&stubValidator{})

	for name, header := range map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic abc",
		"garbage token": "Bearer not-a-jwt",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid error body: %v", name, err)
		}
		if body["error"] != "UNAUTHORIZED" {
			t.Errorf("%s: error = %v, want UNAUTHORIZED", name, body["error"])
		}
	}
}

func TestAuthMiddleware_ValidTokenReachesHandler(t *testing.T) {
	engine := newTestEngine(&stubValidator{claims: map[string]*identity.Claims{
		"good-token": {Subject: "sub-1", Email: "jane@example.com"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-User-Subject") != "sub-1" {
		t.Errorf("X-User-Subject = %q, want sub-1", rec.Header().Get("X-User-Subject"))
	}
}
