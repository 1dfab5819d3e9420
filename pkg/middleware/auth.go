package middleware

import (
	"net/http"
	"strings"

	"minigram/pkg/flash"
	"minigram/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "session"

// AuthMiddleware resolves the request identity from a Bearer token or the
// session cookie and stores it in the gin context. Unauthenticated requests
// are flashed and redirected to the login page.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				token = cookie
			}
		}

		if token == "" {
			flash.Set(c, "login first")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			flash.Set(c, "login first")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// CurrentUserID returns the authenticated user id placed in the context by
// AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
