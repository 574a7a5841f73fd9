// Package auth implements the staff access guard with signed bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

var _ ports.AccessGuard = (*TokenGuard)(nil)

type Config struct {
	Secret []byte
	TTL    time.Duration
	// StaffEmail and StaffPasswordHash describe the single staff account. The hash is
	// a bcrypt hash.
	StaffEmail        string
	StaffPasswordHash string
}

type identityKey struct{}

// TokenGuard issues HS256 tokens for the staff account and remembers revoked token ids
// until they expire.
type TokenGuard struct {
	cfg   Config
	clock clock.Clock

	mu        sync.Mutex
	revoked   map[string]time.Time
	listeners map[int]ports.AuthChangeFunc
	nextID    int
}

func NewTokenGuard(cfg Config, clk clock.Clock) (*TokenGuard, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	if strings.TrimSpace(cfg.StaffEmail) == "" || cfg.StaffPasswordHash == "" {
		return nil, errors.New("auth: staff account is required")
	}
	if _, err := bcrypt.Cost([]byte(cfg.StaffPasswordHash)); err != nil {
		return nil, fmt.Errorf("auth: staff password hash: %w", err)
	}
	cfg.StaffEmail = normalizeEmail(cfg.StaffEmail)
	return &TokenGuard{
		cfg:       cfg,
		clock:     clk,
		revoked:   make(map[string]time.Time),
		listeners: make(map[int]ports.AuthChangeFunc),
	}, nil
}

// SignIn checks the credentials and returns a signed token for the staff identity.
func (g *TokenGuard) SignIn(email, password string) (string, ports.Identity, error) {
	email = normalizeEmail(email)
	if email != g.cfg.StaffEmail {
		return "", ports.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(g.cfg.StaffPasswordHash), []byte(password)); err != nil {
		return "", ports.Identity{}, ErrInvalidCredentials
	}

	now := g.clock.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.cfg.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.cfg.Secret)
	if err != nil {
		return "", ports.Identity{}, err
	}
	return signed, identityOf(claims), nil
}

// Authenticate verifies a token and returns its identity. Expired, malformed, foreign
// and revoked tokens all yield ErrUnauthenticated.
func (g *TokenGuard) Authenticate(token string) (ports.Identity, error) {
	claims, err := g.parse(token)
	if err != nil {
		return ports.Identity{}, err
	}
	g.mu.Lock()
	_, revoked := g.revoked[claims.ID]
	g.mu.Unlock()
	if revoked {
		return ports.Identity{}, ErrUnauthenticated
	}
	return identityOf(*claims), nil
}

// SignOut revokes token and notifies the registered listeners.
func (g *TokenGuard) SignOut(token string) error {
	claims, err := g.parse(token)
	if err != nil {
		return err
	}

	g.mu.Lock()
	if _, ok := g.revoked[claims.ID]; ok {
		g.mu.Unlock()
		return ErrUnauthenticated
	}
	g.pruneLocked()
	g.revoked[claims.ID] = claims.ExpiresAt.Time
	listeners := make([]ports.AuthChangeFunc, 0, len(g.listeners))
	for _, fn := range g.listeners {
		listeners = append(listeners, fn)
	}
	g.mu.Unlock()

	previous := identityOf(*claims)
	for _, fn := range listeners {
		fn(previous, nil)
	}
	return nil
}

// WithIdentity attaches id to ctx so that CurrentUser can find it.
func WithIdentity(ctx context.Context, id ports.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func (g *TokenGuard) CurrentUser(ctx context.Context) (ports.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(ports.Identity)
	if !ok || id.Subject == "" {
		return ports.Identity{}, false
	}
	return id, true
}

func (g *TokenGuard) OnAuthChange(fn ports.AuthChangeFunc) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.listeners, id)
			g.mu.Unlock()
		})
	}
}

func (g *TokenGuard) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.cfg.Secret, nil
	})
	if err != nil || !parsed.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// pruneLocked forgets revoked ids whose tokens have expired anyway.
func (g *TokenGuard) pruneLocked() {
	now := g.clock.Now()
	for id, exp := range g.revoked {
		if now.After(exp) {
			delete(g.revoked, id)
		}
	}
}

func identityOf(claims jwt.RegisteredClaims) ports.Identity {
	return ports.Identity{Subject: claims.Subject, Email: claims.Subject}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
