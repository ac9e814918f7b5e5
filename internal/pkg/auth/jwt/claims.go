/*
Package jwt signs and verifies the token stored in the session cookie.

The token carries only the opaque session identifier; the identity it maps to lives
server-side in the session store. The signature protects the cookie's integrity.
*/
package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims of a session cookie token.
type Payload struct {
	// StandardClaims embeds the expiry, issued-at and issuer fields checked on every parse.
	jwt.StandardClaims

	// SessionID names the server-side session this cookie belongs to.
	SessionID string `json:"sid"`
}
