package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahilo5/delval-report-management/internal/middleware"
	"github.com/sahilo5/delval-report-management/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, role string, dur time.Duration) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID:   "5e6705a5-8a3c-4dc3-9f6e-000000000001",
		Username: "testuser",
		FullName: "Test User",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(dur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{middleware.JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username, "name": claims.DisplayName()})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, model.RoleAssembler, -time.Hour)
	w := doGet(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired")
}

func TestJWTAuth_TamperedToken(t *testing.T) {
	token := signToken(t, model.RoleAssembler, time.Hour)
	w := doGet(protectedRouter(), token+"x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token := signToken(t, model.RoleAssembler, time.Hour)
	w := doGet(protectedRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testuser")
	assert.Contains(t, w.Body.String(), "Test User")
}

func TestRequireRole_Denied(t *testing.T) {
	token := signToken(t, model.RolePainter, time.Hour)
	w := doGet(protectedRouter(model.RoleAssemblyEngineer, model.RoleAdmin), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	token := signToken(t, model.RoleAdmin, time.Hour)
	w := doGet(protectedRouter(model.RoleAssemblyEngineer, model.RoleAdmin), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
