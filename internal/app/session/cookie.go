package session

import (
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "chirp_session"

// CookieOptions controls the attributes of the session cookie. The cookie is always
// HttpOnly and scoped to the whole site.
type CookieOptions struct {
	Domain string
	Secure bool

	// SameSite defaults to Lax.
	SameSite http.SameSite
}

func (o CookieOptions) build(value string) *http.Cookie {
	sameSite := o.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   o.Domain,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: sameSite,
	}
}

// SetCookie hands the signed session token to the client until expiresAt.
func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	c := opts.build(token)
	c.Expires = expiresAt
	c.MaxAge = max(int(time.Until(expiresAt).Seconds()), 1)
	http.SetCookie(w, c)
}

// ClearCookie tells the client to drop the session cookie.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	c := opts.build("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
