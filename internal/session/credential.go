package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scope says which storage a credential survives in. A session-scoped
// credential dies with the process; a remembered one is written to disk.
type Scope string

const (
	ScopeSession    Scope = "session"
	ScopeRemembered Scope = "remembered"
)

// Credential is the bearer token issued by the service at login.
type Credential struct {
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
	Persistence Scope  `json:"persistence"`
}

// AuthorizationValue builds the Authorization header value. The token type
// defaults to Bearer when the service omitted it.
func (c Credential) AuthorizationValue() string {
	tt := c.TokenType
	if tt == "" {
		tt = "Bearer"
	}
	return tt + " " + c.Token
}

// Expired reports whether the token carries an exp claim in the past.
// The signature is NOT verified; only the server can do that. Tokens that
// are not JWTs or carry no exp claim are treated as unexpired and left for
// the server to reject.
func (c Credential) Expired(now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(c.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
