package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-order-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(auth *service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger())
	g := r.Group("/", AuthMiddleware(auth))
	g.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(CtxUserID)})
	})
	g.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService("secret")
	r := newEngine(auth)

	rec := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = do(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := auth.IssueToken("u1", "")
	require.NoError(t, err)
	rec = do(r, "/me", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1"}`, rec.Body.String())
}

func TestAdminOnly(t *testing.T) {
	auth := service.NewAuthService("secret")
	r := newEngine(auth)

	user, _ := auth.IssueToken("u1", "user")
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", user).Code)

	admin, _ := auth.IssueToken("u2", "admin")
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", admin).Code)
}

func TestRequestIDIsReused(t *testing.T) {
	r := newEngine(service.NewAuthService("secret"))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestBearerToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Request.Header.Set("Authorization", "bearer  tok ")
	assert.Equal(t, "tok", BearerToken(c))

	c.Request.Header.Set("Authorization", "Basic xyz")
	assert.Equal(t, "", BearerToken(c))
}
