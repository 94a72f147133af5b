package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const tokenCookie = "token"

// setTokenCookie stores a freshly issued session token.
func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookieData(&http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  h.now().Add(h.cfg.CookieLifetime),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearTokenCookie overwrites the session cookie with an empty value that
// expires immediately.
func (h *Handler) clearTokenCookie(c *gin.Context) {
	c.SetCookieData(&http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  h.now(),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}
