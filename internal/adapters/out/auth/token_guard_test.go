package auth_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	staffEmail    = "staff@orderdesk.test"
	staffPassword = "correct horse"
)

func newGuard(t *testing.T, clk clock.Clock) *auth.TokenGuard {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(staffPassword), bcrypt.MinCost)
	require.NoError(t, err)
	g, err := auth.NewTokenGuard(auth.Config{
		Secret:            []byte("test-secret"),
		TTL:               time.Hour,
		StaffEmail:        staffEmail,
		StaffPasswordHash: string(hash),
	}, clk)
	require.NoError(t, err)
	return g
}

func TestNewTokenGuard_RejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  auth.Config
	}{
		{"no secret", auth.Config{TTL: time.Hour, StaffEmail: staffEmail, StaffPasswordHash: "x"}},
		{"no ttl", auth.Config{Secret: []byte("s"), StaffEmail: staffEmail, StaffPasswordHash: "x"}},
		{"no account", auth.Config{Secret: []byte("s"), TTL: time.Hour}},
		{"not a bcrypt hash", auth.Config{Secret: []byte("s"), TTL: time.Hour, StaffEmail: staffEmail, StaffPasswordHash: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.NewTokenGuard(tt.cfg, clock.NewSystem())
			assert.Error(t, err)
		})
	}
}

func TestTokenGuard_SignInAndAuthenticate(t *testing.T) {
	g := newGuard(t, clock.NewSystem())

	token, id, err := g.SignIn("  Staff@OrderDesk.test ", staffPassword)
	require.NoError(t, err)
	assert.Equal(t, staffEmail, id.Email)

	got, err := g.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenGuard_SignInRejectsBadCredentials(t *testing.T) {
	g := newGuard(t, clock.NewSystem())

	_, _, err := g.SignIn(staffEmail, "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = g.SignIn("other@orderdesk.test", staffPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestTokenGuard_AuthenticateRejectsBadTokens(t *testing.T) {
	g := newGuard(t, clock.NewSystem())

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "x",
		Subject:   staffEmail,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	expiredGuard := newGuard(t, clock.NewFixed(time.Now().Add(-2*time.Hour)))
	expired, _, err := expiredGuard.SignIn(staffEmail, staffPassword)
	require.NoError(t, err)

	for name, token := range map[string]string{"empty": "", "garbage": "abc", "foreign": foreign, "expired": expired} {
		t.Run(name, func(t *testing.T) {
			_, err := g.Authenticate(token)
			assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		})
	}
}

func TestTokenGuard_SignOutRevokesAndNotifies(t *testing.T) {
	g := newGuard(t, clock.NewSystem())
	token, id, err := g.SignIn(staffEmail, staffPassword)
	require.NoError(t, err)

	var changes []ports.Identity
	var currents []*ports.Identity
	unregister := g.OnAuthChange(func(previous ports.Identity, current *ports.Identity) {
		changes = append(changes, previous)
		currents = append(currents, current)
	})

	require.NoError(t, g.SignOut(token))

	_, err = g.Authenticate(token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, []ports.Identity{id}, changes)
	assert.Nil(t, currents[0])

	// A second sign-out with the same token is rejected and notifies nobody.
	assert.ErrorIs(t, g.SignOut(token), auth.ErrUnauthenticated)
	assert.Len(t, changes, 1)

	unregister()
	unregister()
	other, _, err := g.SignIn(staffEmail, staffPassword)
	require.NoError(t, err)
	require.NoError(t, g.SignOut(other))
	assert.Len(t, changes, 1)
}

func TestTokenGuard_CurrentUser(t *testing.T) {
	g := newGuard(t, clock.NewSystem())

	_, ok := g.CurrentUser(context.Background())
	assert.False(t, ok)

	_, ok = g.CurrentUser(auth.WithIdentity(context.Background(), ports.Identity{}))
	assert.False(t, ok)

	want := ports.Identity{Subject: staffEmail, Email: staffEmail}
	got, ok := g.CurrentUser(auth.WithIdentity(context.Background(), want))
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
