package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *auth.TokenManager, roles ...model.Role) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{Auth(tokens.ParseAccess)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		principal, _ := MustPrincipal(c)
		c.JSON(http.StatusOK, principal)
	})
	router.GET("/protected", handlers...)
	return router
}

func perform(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestAuthAcceptsAccessToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour, time.Hour)
	token, err := tokens.IssueAccess(model.Principal{Username: "ana", Role: model.RoleEmployee})
	require.NoError(t, err)

	rec := perform(newRouter(tokens), "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec.Body)
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, "employee", body["role"])
}

func TestAuthFailures(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour, time.Hour)
	expired := auth.NewTokenManager("secret", -time.Minute, time.Hour, time.Hour)
	principal := model.Principal{Username: "ana", Role: model.RoleAdmin}

	expiredToken, err := expired.IssueAccess(principal)
	require.NoError(t, err)
	refreshToken, err := tokens.IssueRefresh(principal)
	require.NoError(t, err)
	foreign, err := auth.NewTokenManager("other", time.Minute, time.Hour, time.Hour).IssueAccess(principal)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing", "", "Missing Authorization Header"},
		{"wrong scheme", "Basic abc", "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'"},
		{"expired", "Bearer " + expiredToken, "Token has expired"},
		{"refresh used as access", "Bearer " + refreshToken, "Wrong token type"},
		{"foreign signature", "Bearer " + foreign, "Signature verification failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(newRouter(tokens), tc.header)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.msg, decode(t, rec.Body)["msg"])
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour, time.Hour)
	router := newRouter(tokens, model.RoleAdmin)

	employee, err := tokens.IssueAccess(model.Principal{Username: "ana", Role: model.RoleEmployee})
	require.NoError(t, err)
	rec := perform(router, "Bearer "+employee)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode(t, rec.Body)["error"])

	admin, err := tokens.IssueAccess(model.Principal{Username: "root", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, perform(router, "Bearer "+admin).Code)
}

func TestRequestLoggerIncludesUsername(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour, time.Hour)
	var buf bytes.Buffer

	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/protected", Auth(tokens.ParseAccess), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token, err := tokens.IssueAccess(model.Principal{Username: "ana", Role: model.RoleAdmin})
	require.NoError(t, err)
	perform(router, "Bearer "+token)

	line := decode(t, &buf)
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, float64(http.StatusNoContent), line["status"])
	assert.Equal(t, "ana", line["username"])
}

func TestMetricsCountsRoutes(t *testing.T) {
	metrics := NewMetrics("test")
	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(),
		`test_http_requests_total{method="GET",route="/items/:id",status="200"} 2`))
}
