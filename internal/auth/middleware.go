package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

const SessionCookie = "gs_session"

// SessionMiddleware resolves the current session on every request and stores
// it in the context when present. A failed resolution is treated the same as
// no session; nothing is retried.
func SessionMiddleware(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				token = cookie
			}
		}
		if token != "" {
			if session, err := provider.GetSession(c.Request.Context(), token); err == nil {
				c.Set("session", session)
			}
		}
		c.Next()
	}
}

// RequireSession gates the dashboard: browsers are redirected to the auth
// view, API callers get a 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); ok {
			c.Next()
			return
		}
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/auth")
		c.Abort()
	}
}

// RedirectIfAuthed keeps signed-in users out of onboarding and the auth view.
func RedirectIfAuthed() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (*internal.Session, bool) {
	v, ok := c.Get("session")
	if !ok {
		return nil, false
	}
	session, ok := v.(*internal.Session)
	return session, ok && session != nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func wantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") || bearerToken(c) != ""
}
