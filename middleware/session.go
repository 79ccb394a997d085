package middleware

import (
	"net/http"
	"strings"

	"dairyfront/services/session"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "storefrontSession"

// SessionMiddleware hydrates the storefront session named by the bearer JWT
// and stores it on the request context. When no valid token is presented a
// fresh anonymous session is created, so every request downstream always
// sees a session.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if sessionID, err := utils.ExtractSessionIDFromToken(tokenString); err == nil {
				if loaded, err := store.Get(ctx, sessionID); err == nil {
					sess = loaded
				}
			}
		}

		if sess == nil {
			created, err := store.Create(ctx)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Could not establish a session",
				})
				return
			}
			sess = created
			c.Header("X-New-Session", "1")
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireUser blocks requests whose session has no signed-in user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks requests whose session is not an admin session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Authenticated() || !sess.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// GetSession returns the hydrated session for this request, or nil.
func GetSession(c *gin.Context) *session.Session {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
