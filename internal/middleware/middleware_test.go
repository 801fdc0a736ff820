package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func signedTokenWith(t *testing.T, method jwt.SigningMethod, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		ownerID, ok := GetOwnerIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, ownerID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + signedToken(t, "owner-1", time.Hour), http.StatusOK, "owner-1"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + signedToken(t, "owner-1", -time.Hour), http.StatusUnauthorized, "Token has expired"},
		{"no subject", "Bearer " + signedToken(t, "", time.Hour), http.StatusUnauthorized, "Invalid token claims"},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized, "Invalid token"},
		{"wrong algorithm", "Bearer " + signedTokenWith(t, jwt.SigningMethodHS384, "owner-1"), http.StatusUnauthorized, "Invalid token"},
		{"lowercase scheme", "bearer " + signedToken(t, "owner-2", time.Hour), http.StatusOK, "owner-2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			authRouter().ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"kind":"UNAUTHORIZED"`)
			}
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(req.Context()))

	logger := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	assert.Same(t, logger, GetLoggerFromCtx(WithLogger(req.Context(), logger)))
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	const incoming = "6f1d2c3b-4a59-4e8f-9b7a-0c1d2e3f4a5b"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCompletionLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, completionLevel(http.StatusNoContent))
	assert.Equal(t, slog.LevelWarn, completionLevel(http.StatusTooManyRequests))
	assert.Equal(t, slog.LevelError, completionLevel(http.StatusBadGateway))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestRateLimit_PerOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewRateLimiter("1-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(testSecret), RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(owner string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, owner, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := call("owner-a")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, http.StatusTooManyRequests, call("owner-a").Code)
	// same client IP, different owner
	assert.Equal(t, http.StatusOK, call("owner-b").Code)
}
