package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/pkg/jwtutil"
)

const ContextSessionKey = "session"

// Session is the verified identity for one request. It is set once by
// DecodeSession and read-only afterwards.
type Session struct {
	UserID   uint
	Username string
}

// DecodeSession turns the session cookie into a Session in the gin context.
// Absent, malformed, badly signed or expired tokens all leave the request
// anonymous; the failure is a server-side log line, never a client error.
func DecodeSession(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := jwtutil.ParseToken(secret, raw)
		if err != nil {
			log.Printf("session token rejected: %v", err)
			c.Next()
			return
		}

		c.Set(ContextSessionKey, Session{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		c.Next()
	}
}

// RequireSession gates mutating routes. An unauthenticated attempt is a
// navigation event, so it redirects home instead of returning 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return Session{}, false
	}
	session, ok := value.(Session)
	return session, ok
}
