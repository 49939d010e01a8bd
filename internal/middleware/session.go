package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

const sessionIDKey = "session_id"

// ErrInvalidSession is returned for cookies that fail signature or claim checks
var ErrInvalidSession = errors.New("invalid session token")

// SessionTokens signs and validates session cookies. The token is an HS256
// JWT whose subject is the session ID.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sessionID
func (t *SessionTokens) Issue(sessionID string) (string, error) {
	now := t.now()
	claims := &types.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate returns the claims of a valid token
func (t *SessionTokens) Validate(token string) (*types.SessionClaims, error) {
	claims := &types.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	return claims, nil
}

// CookieOptions controls the session cookie attributes
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Session resolves the browser session from its cookie, starting a new one
// when the cookie is missing or invalid. The cookie is re-issued once half of
// its lifetime has passed.
func Session(tokens *SessionTokens, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		refresh := true

		if raw, err := c.Cookie(opts.Name); err == nil && raw != "" {
			claims, err := tokens.Validate(raw)
			if err != nil {
				logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("Discarding session cookie")
			} else {
				sessionID = claims.Subject
				if claims.ExpiresAt != nil {
					refresh = claims.ExpiresAt.Sub(tokens.now()) < opts.TTL/2
				}
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		if refresh {
			token, err := tokens.Issue(sessionID)
			if err != nil {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to issue session cookie")
			} else {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(opts.Name, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
			}
		}

		c.Set(sessionIDKey, sessionID)
		c.Request = c.Request.WithContext(logging.ContextWithSessionID(c.Request.Context(), sessionID))
		c.Next()
	}
}

// SessionID returns the session resolved by Session
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
