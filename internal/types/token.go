package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims in a session cookie token.
// The session ID travels in the registered subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}
