package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/backend/internal/infrastructure/auth"
	"github.com/shoestore/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-middleware-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        3,
	})
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/api/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.MustParse("c3a7c7de-9b18-4db0-a343-a1c1c6720000"),
		Username: "an",
		Role:     "staff",
	})
	require.NoError(t, err)

	r := newProtectedRouter(DefaultJWTConfig(svc))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "c3a7c7de-9b18-4db0-a343-a1c1c6720000")
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPath(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.MustParse("c3a7c7de-9b18-4db0-a343-a1c1c6720000"),
		Username: "an",
		Role:     "staff",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist

	r := newProtectedRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(JWTRoleKey, "staff") })
	r.DELETE("/api/v1/products/:id", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
