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
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	// same claim shape the auth service emits
	claims := jwt.MapClaims{
		"user_id":  "8a2bd1de-8c52-4b76-9a3e-000000000001",
		"username": "lion1",
		"role":     role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetClaims(c).Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsServiceTokens(t *testing.T) {
	r := protectedRouter()
	w := doRequest(r, signToken(t, "lion", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"lion"`)
}

func TestJWTAuthRejections(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, signToken(t, "lion", -time.Hour)).Code)

	// token signed with a different secret
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "x", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, other).Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter("chairman", "admin")

	assert.Equal(t, http.StatusForbidden, doRequest(r, signToken(t, "lion", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, signToken(t, "chairman", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, signToken(t, "admin", time.Hour)).Code)
}
