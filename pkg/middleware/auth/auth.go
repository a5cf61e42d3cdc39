package auth

import (
	// 外部依赖
	"context"
	"sync"
	"time"

	gin "github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	model "github.com/chemstack/labstock/pkg/model"
)

const USERKEY = "AUTH_USER_KEY"

type Claims struct {
	Username string      `json:"username"`
	Role     common.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken mints a bearer token for a logged-in user. The jti lets logout
// revoke it before expiry.
func IssueToken(username string, role common.Role) (string, time.Time, error) {
	conf := config.Global().Auth
	expiresAt := time.Now().Add(time.Duration(conf.TokenTTLHours) * time.Hour)

	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   username,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.JWTSecret))
	if err != nil {
		return "", time.Time{}, code.Internal.WithErr(err)
	}
	return token, expiresAt, nil
}

// ParseToken validates a bearer token and rejects revoked ones.
func ParseToken(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, code.InvalidToken
		}
		return []byte(config.Global().Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, code.InvalidToken
	}

	revoked, err := Sessions().IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, code.InvalidToken
	}
	return claims, nil
}

// GetCurrentUser returns the authenticated user stored by the middleware,
// nil outside an authenticated request.
func GetCurrentUser(ctx context.Context) *model.UserData {
	if g, ok := ctx.(*gin.Context); ok {
		if v, exists := g.Get(USERKEY); exists {
			if user, ok := v.(*model.UserData); ok {
				return user
			}
		}
		return nil
	}
	if user, ok := ctx.Value(userCtxKey{}).(*model.UserData); ok {
		return user
	}
	return nil
}

type userCtxKey struct{}

// WithUser binds a user to a plain context. Tests and background jobs use
// this; requests go through the middleware instead.
func WithUser(ctx context.Context, user *model.UserData) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// SessionStore revokes tokens by jti until their natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

var (
	sessionStore SessionStore
	sessionOnce  sync.Once
)

// Sessions returns the process session store, defaulting to in-memory when
// nothing was installed. InitSessions swaps in the redis-backed store for
// deployments that need revocation to survive restarts.
func Sessions() SessionStore {
	sessionOnce.Do(func() {
		if sessionStore == nil {
			sessionStore = newMemoryStore()
		}
	})
	return sessionStore
}

func InitSessions(store SessionStore) {
	sessionStore = store
}

type memoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{revoked: map[string]time.Time{}}
}

func (m *memoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = time.Now().Add(ttl)
	for id, deadline := range m.revoked {
		if time.Now().After(deadline) {
			delete(m.revoked, id)
		}
	}
	return nil
}

func (m *memoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deadline, ok := m.revoked[jti]
	return ok && time.Now().Before(deadline), nil
}
