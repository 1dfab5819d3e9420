package flash

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

// Flash messages ride on a short-lived cookie, so a redirect target can show
// the outcome of the request that set it and then discard it.

const cookieName = "flash"

func Set(c *gin.Context, message string) {
	c.SetCookie(cookieName, url.QueryEscape(message), 60, "/", "", false, true)
}

// Take returns the pending flash message, if any, and clears it.
func Take(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return "", false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}
	return message, true
}
