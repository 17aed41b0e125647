package middleware

import (
	"net/http"
	"strings"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/tokens"
	"github.com/gin-gonic/gin"
)

// Identity is the authenticated user attached to the request context.
// Handlers read it instead of any ambient session state.
type Identity struct {
	Username string
	Role     string
}

const (
	identityKey     = "identity"
	sessionTokenKey = "sessionToken"
)

// ResolveIdentity attaches the current Identity, if any, to the request
// context. A Bearer access token takes precedence; otherwise the session
// cookie is looked up in the session store. Requests without either proceed
// anonymously — route gates decide what requires a user.
func ResolveIdentity(cfg *config.Config, sessionsSvc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			raw := strings.TrimPrefix(auth, "Bearer ")
			if id, err := tokens.ParseAccessToken(cfg, raw); err == nil {
				c.Set(identityKey, &Identity{Username: id.Username, Role: id.Role})
				c.Next()
				return
			}
			// fall through: an invalid bearer token is treated as anonymous
		}

		if token, err := c.Cookie(cfg.Session.CookieName); err == nil && token != "" {
			if sess, err := sessionsSvc.Get(c.Request.Context(), token); err == nil && sess != nil {
				c.Set(identityKey, &Identity{Username: sess.Username, Role: sess.Role})
				c.Set(sessionTokenKey, token)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity for this request, if any.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok
}

// SessionToken returns the cookie session token for this request, or "".
// Bearer-authenticated requests have no session token (and no flash queue).
func SessionToken(c *gin.Context) string {
	v, ok := c.Get(sessionTokenKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RequireUser aborts with the generic error view unless a user is logged in.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with the generic error view unless the current user has
// the admin role. Anonymous requests get the same view.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if id.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
