package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "token.json"))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@escola.com",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSessionScopeDoesNotTouchDisk(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{Token: "abc", TokenType: "Bearer", Persistence: ScopeSession}))

	cred, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "abc", cred.Token)

	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestRememberedScopeSurvivesRestart(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{Token: "abc", TokenType: "Bearer", Persistence: ScopeRemembered}))

	// a fresh store over the same file simulates a new process
	s2 := NewStore(s.path)
	cred, ok := s2.Current()
	require.True(t, ok)
	assert.Equal(t, "abc", cred.Token)
	assert.Equal(t, ScopeRemembered, cred.Persistence)
}

func TestSessionScopeWinsOverRemembered(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{Token: "old", Persistence: ScopeRemembered}))
	require.NoError(t, s.Save(Credential{Token: "new", Persistence: ScopeSession}))

	cred, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "new", cred.Token)
}

func TestClearWipesBothScopes(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(Credential{Token: "mem", Persistence: ScopeSession}))
	require.NoError(t, s.writeFile(Credential{Token: "disk", Persistence: ScopeRemembered}))

	s.Clear()

	assert.False(t, s.Authenticated())
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestExpiredRememberedCredentialDiscarded(t *testing.T) {
	s := newTestStore(t)
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, s.Save(Credential{Token: expired, Persistence: ScopeRemembered}))

	_, ok := s.Current()
	assert.False(t, ok)

	// and the stale file is gone
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpaqueTokenNeverExpiresLocally(t *testing.T) {
	c := Credential{Token: "not-a-jwt"}
	assert.False(t, c.Expired(time.Now()))
}

func TestFutureTokenNotExpired(t *testing.T) {
	c := Credential{Token: signedToken(t, time.Now().Add(time.Hour))}
	assert.False(t, c.Expired(time.Now()))
}

func TestAuthorizationValueDefaultsToBearer(t *testing.T) {
	assert.Equal(t, "Bearer abc", Credential{Token: "abc"}.AuthorizationValue())
	assert.Equal(t, "Token abc", Credential{Token: "abc", TokenType: "Token"}.AuthorizationValue())
}
