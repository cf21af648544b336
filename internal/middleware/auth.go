// Package middleware provides gin middleware for bearer token authentication.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flyosprey/Store-REST-API/internal/metrics"
	"github.com/flyosprey/Store-REST-API/internal/service"
	"github.com/gin-gonic/gin"
)

// Mode selects which tokens a protected route accepts.
type Mode int

const (
	// ModeAccess accepts any valid, unrevoked access token.
	ModeAccess Mode = iota
	// ModeFresh additionally requires the token to be fresh.
	ModeFresh
	// ModeRefresh accepts only refresh tokens.
	ModeRefresh
)

// ClaimsKey is the gin context key holding *service.Claims.
const ClaimsKey = "auth_claims"

// Error codes written in the "error" field of 401 responses.
const (
	CodeAuthorizationRequired = "authorization_required"
	CodeInvalidToken          = "invalid_token"
	CodeTokenExpired          = "token_expired"
	CodeTokenRevoked          = "token_revoked"
	CodeFreshTokenRequired    = "fresh_token_required"
)

var failureMessages = map[string]string{
	CodeAuthorizationRequired: "Request does not contain an access token.",
	CodeInvalidToken:          "Signature verification failed.",
	CodeTokenExpired:          "The token has expired.",
	CodeTokenRevoked:          "The token has been revoked.",
	CodeFreshTokenRequired:    "The token is not fresh.",
}

// Authenticator validates bearer tokens against the signing key and the
// revocation blocklist.
type Authenticator struct {
	jwt       service.JWTService
	blocklist service.Blocklist
	metrics   *metrics.Metrics
}

// NewAuthenticator creates an Authenticator. m may be nil.
func NewAuthenticator(jwtService service.JWTService, blocklist service.Blocklist, m *metrics.Metrics) *Authenticator {
	return &Authenticator{jwt: jwtService, blocklist: blocklist, metrics: m}
}

// Require returns middleware enforcing mode. Checks run in order: presence,
// signature and expiry, revocation, token type, freshness.
func (a *Authenticator) Require(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			a.reject(c, CodeAuthorizationRequired)
			return
		}

		claims, err := a.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				a.reject(c, CodeTokenExpired)
			} else {
				a.reject(c, CodeInvalidToken)
			}
			return
		}

		if a.blocklist.IsRevoked(claims.ID) {
			a.reject(c, CodeTokenRevoked)
			return
		}

		if (mode == ModeRefresh) != claims.IsRefresh() {
			a.reject(c, CodeInvalidToken)
			return
		}

		if mode == ModeFresh && !claims.Fresh {
			a.reject(c, CodeFreshTokenRequired)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func (a *Authenticator) reject(c *gin.Context, code string) {
	a.metrics.AuthFailure(code)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": failureMessages[code],
		"error":   code,
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ClaimsFromContext returns the claims stored by Require.
func ClaimsFromContext(c *gin.Context) (*service.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(c *gin.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
