package session

import (
	"net/http"

	"github.com/dmitrymomot/webutils/core/cookie"
)

// SetCookie writes the session token cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, sess Session) error {
	return m.cookies.Set(w, m.cfg.CookieName, sess.Token,
		cookie.WithMaxAge(int(m.cfg.TTL.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithSecure(m.cfg.CookieSecure),
		cookie.WithPath("/"),
	)
}

// ClearCookie expires the session token cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	m.cookies.Delete(w, m.cfg.CookieName)
}

// TokenFromRequest returns the session token carried by r, or "".
func (m *Manager) TokenFromRequest(r *http.Request) string {
	tok, err := m.cookies.Get(r, m.cfg.CookieName)
	if err != nil {
		return ""
	}
	return tok
}
