package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/emekaobi/storefront-backend/sessions"
)

const (
	sessionCookie = "storefront_session"
	sessionHeader = "X-Session-ID"
	// Cookie lifetime matches the cart TTL default.
	sessionMaxAge = 60 * 60 * 24 * 7
)

// sessionID returns the caller's session id, minting one and setting the
// cookie on first contact. The header takes precedence so API clients without
// cookie jars can pin their session.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}

	id := sessions.NewSessionID()
	c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}
