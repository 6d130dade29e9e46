package middleware

import (
	"net/http"

	"adoptme/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

// SessionVerifier verifies the JWT carried by the named cookie and
// stores the token, claims and any verification error in the request
// context. Handlers pull them back out with jwtauth.FromContext and
// decide how to answer; verification failures do not short-circuit
// here because the missing-cookie and invalid-token cases need
// different messages.
func SessionVerifier(cookieName string) func(http.Handler) http.Handler {
	return jwtauth.Verify(security.TokenAuth, TokenFromNamedCookie(cookieName))
}

// TokenFromNamedCookie matches jwtauth's find-token signature for an
// arbitrary cookie name.
func TokenFromNamedCookie(name string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}
