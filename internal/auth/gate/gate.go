// Package gate turns a presented credential into the caller's identity.
package gate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/SukhanRumanov/prac3/internal/auth/token"

	"go.uber.org/zap"
)

const CookieName = "access_token"

type Kind int

const (
	Anonymous Kind = iota
	Authenticated
	Administrator
)

func (k Kind) String() string {
	switch k {
	case Administrator:
		return "administrator"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type Identity struct {
	Kind     Kind
	UserID   uint
	Username string
}

var AnonymousIdentity = Identity{Kind: Anonymous}

func (i Identity) IsAuthenticated() bool {
	return i.Kind == Authenticated || i.Kind == Administrator
}

func (i Identity) IsAdministrator() bool {
	return i.Kind == Administrator
}

// Role is the policy subject used by the authorizer.
func (i Identity) Role() string {
	switch i.Kind {
	case Administrator:
		return "admin"
	case Authenticated:
		return "user"
	default:
		return "anonymous"
	}
}

// Account is the stored state the role is derived from.
type Account struct {
	ID          uint
	Username    string
	IsActive    bool
	IsSuperuser bool
}

type AccountFinder interface {
	FindAccount(ctx context.Context, id uint) (Account, error)
}

type AccountFinderFunc func(ctx context.Context, id uint) (Account, error)

func (f AccountFinderFunc) FindAccount(ctx context.Context, id uint) (Account, error) {
	return f(ctx, id)
}

type Gate struct {
	tokens   *token.Manager
	accounts AccountFinder
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Gate)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l.Named("auth.gate")
		}
	}
}

func New(tokens *token.Manager, accounts AccountFinder, opts ...Option) *Gate {
	g := &Gate{
		tokens:   tokens,
		accounts: accounts,
		now:      time.Now,
		logger:   zap.L().Named("auth.gate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve verifies raw and re-reads the account on every call, so
// deactivation and demotion apply from the next request on. Every failure
// yields the anonymous identity.
func (g *Gate) Resolve(ctx context.Context, raw string) Identity {
	if raw == "" {
		return AnonymousIdentity
	}

	claims, err := g.tokens.Verify(raw, g.now())
	if err != nil {
		g.logger.Debug("credential rejected", zap.Error(err))
		return AnonymousIdentity
	}

	acc, err := g.accounts.FindAccount(ctx, claims.UserID)
	if err != nil {
		g.logger.Debug("account lookup failed", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return AnonymousIdentity
	}

	// The subject must still name the same account.
	if acc.Username != claims.Subject || !acc.IsActive {
		return AnonymousIdentity
	}

	kind := Authenticated
	if acc.IsSuperuser {
		kind = Administrator
	}

	return Identity{Kind: kind, UserID: acc.ID, Username: acc.Username}
}

// CredentialFrom reads the bearer header first and falls back to the
// session cookie.
func CredentialFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
