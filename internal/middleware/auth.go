package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/booking-api/internal/session"
)

const (
	// CookieName is the client-held half of a session.
	CookieName = "session_id"
	// ContextUserID is the gin context key handlers read the caller from.
	ContextUserID = "userID"
)

type AuthMiddleware struct {
	store session.Store
	codec *session.Codec
}

func NewAuthMiddleware(store session.Store, codec *session.Codec) *AuthMiddleware {
	return &AuthMiddleware{store: store, codec: codec}
}

// RequireSession resolves the session cookie to a user id and makes it
// available to the handler. Anonymous requests are redirected to the
// login page; the redirect is normal control flow, not an error.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		sessionID, err := m.codec.Decode(value)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		userID, err := m.store.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
