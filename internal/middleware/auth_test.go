package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fieldops-backend/internal/config"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/session"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(&config.Config{SupabaseJWTSecret: testSecret}))
	router.GET("/test", handlers...)
	return router
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func do(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	w := do(newRouter(ok), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := do(newRouter(ok), "invalid-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.NewString()})
	s, _ := token.SignedString([]byte("some-other-secret"))

	w := do(newRouter(ok), s)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "signature")
}

func TestAuthMiddleware_Expired(t *testing.T) {
	s := signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := do(newRouter(ok), s)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_NonUUIDSubject(t *testing.T) {
	w := do(newRouter(ok), signToken(t, jwt.MapClaims{"sub": "user-123"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenDefaultsToOperator(t *testing.T) {
	userID := uuid.New()
	router := newRouter(func(c *gin.Context) {
		id, exists := c.Get(middleware.UserIDKey)
		assert.True(t, exists)
		assert.Equal(t, userID.String(), id)

		sess, found := session.FromContext(c.Request.Context())
		assert.True(t, found)
		assert.Equal(t, userID, sess.UserID)
		assert.Equal(t, session.RoleOperator, sess.Role)
		ok(c)
	})

	w := do(router, signToken(t, jwt.MapClaims{"sub": userID.String()}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_AdminRole(t *testing.T) {
	router := newRouter(func(c *gin.Context) {
		sess, _ := middleware.GetSession(c)
		assert.True(t, sess.IsAdmin())
		ok(c)
	})

	w := do(router, signToken(t, jwt.MapClaims{
		"sub":          uuid.NewString(),
		"app_metadata": map[string]interface{}{"role": "admin"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_UnknownRole(t *testing.T) {
	w := do(newRouter(ok), signToken(t, jwt.MapClaims{
		"sub":          uuid.NewString(),
		"app_metadata": map[string]interface{}{"role": "superuser"},
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole(t *testing.T) {
	router := newRouter(middleware.RequireRole(session.RoleAdmin), ok)

	operator := signToken(t, jwt.MapClaims{"sub": uuid.NewString()})
	assert.Equal(t, http.StatusForbidden, do(router, operator).Code)

	admin := signToken(t, jwt.MapClaims{
		"sub":          uuid.NewString(),
		"app_metadata": map[string]interface{}{"role": "admin"},
	})
	assert.Equal(t, http.StatusOK, do(router, admin).Code)
}

func TestRequireRole_WithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", middleware.RequireRole(session.RoleAdmin), ok)

	assert.Equal(t, http.StatusUnauthorized, do(router, "").Code)
}
