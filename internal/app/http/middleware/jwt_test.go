package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/config"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	return s
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"roles":   c.GetStringSlice("roles"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := protectedRouter()

	token := signedToken(t, jwt.MapClaims{
		"user_id": 7,
		"email":   "alice@example.com",
		"roles":   []string{"moderator"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), "moderator")

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not.a.token").Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := protectedRouter()

	token := signedToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestRequireRole(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := protectedRouter(RequireRole("admin"))

	admin := signedToken(t, jwt.MapClaims{
		"user_id": 1,
		"roles":   []string{"admin"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	plain := signedToken(t, jwt.MapClaims{
		"user_id": 2,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, http.StatusOK, get(r, "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+plain).Code)
}
