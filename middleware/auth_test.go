package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecotrack-api/utils"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func claimsEcho(t *testing.T, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		assert.True(t, ok)
		assert.Equal(t, wantEmail, claims.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/orders/myorders", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		AuthMiddleware(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT("64f1c0ffee0000000000abcd", "shopper@example.com", "consumer")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(claimsEcho(t, "shopper@example.com")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	cases := []struct {
		role string
		want int
	}{
		{"business", http.StatusOK},
		{"admin", http.StatusOK},
		{"consumer", http.StatusForbidden},
	}

	for _, tc := range cases {
		token, err := utils.GenerateJWT("64f1c0ffee0000000000abcd", "u@example.com", tc.role)
		assert.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		gate := RequireRole("business", "admin")
		AuthMiddleware(gate(okHandler())).ServeHTTP(rec, req)

		assert.Equal(t, tc.want, rec.Code, "role %s", tc.role)
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	// RequireRole without AuthMiddleware in front has no claims to check.
	req := httptest.NewRequest("POST", "/api/products", nil)
	rec := httptest.NewRecorder()

	RequireRole("business")(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
