package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"gamehaven/internal/pkg/jwtutil"
)

const (
	testSecret = "middleware-test-secret"
	cookieName = "gamehaven_session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(DecodeSession(testSecret, cookieName))

	router.GET("/whoami", func(c *gin.Context) {
		if session, ok := SessionFrom(c); ok {
			c.String(http.StatusOK, session.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	authed := router.Group("/", RequireSession())
	authed.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return router
}

func request(t *testing.T, router *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDecodeSessionValidToken(t *testing.T) {
	router := newTestRouter(t)

	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 42, "alice01")
	require.NoError(t, err)

	rec := request(t, router, "/whoami", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice01", rec.Body.String())
}

// Bad tokens must not produce a client-visible error; the request simply
// proceeds anonymously.
func TestDecodeSessionAnonymousFallback(t *testing.T) {
	router := newTestRouter(t)

	expiredClaims := &jwtutil.Claims{
		UserID:   42,
		Username: "alice01",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	foreign, err := jwtutil.GenerateToken("some-other-secret", time.Hour, 42, "alice01")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
	}{
		{"no cookie", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
		{"wrong secret", foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, router, "/whoami", tt.cookie)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "anonymous", rec.Body.String())
		})
	}
}

func TestRequireSessionRedirectsHome(t *testing.T) {
	router := newTestRouter(t)

	rec := request(t, router, "/dashboard", "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	rec = request(t, router, "/dashboard", "tampered")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireSessionAllowsAuthenticated(t *testing.T) {
	router := newTestRouter(t)

	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 42, "alice01")
	require.NoError(t, err)

	rec := request(t, router, "/dashboard", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dashboard", rec.Body.String())
}
