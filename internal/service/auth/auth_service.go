package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/robinoyako/sips/internal/domain/models"
)

// SessionCookie is the name of the HttpOnly cookie carrying the signed
// session token. It replaces the old pair of plaintext auth/role cookies.
const SessionCookie = "sips_session"

// UserStore is the slice of the ledger store holding accounts.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, username, passwordHash, role string) error
}

// Claims are the verified contents of a session token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service verifies credentials against stored bcrypt hashes and issues
// signed HS256 session tokens.
type Service struct {
	store  UserStore
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewService wires a credential verifier with the given signing secret and
// session lifetime.
func NewService(store UserStore, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, secret: []byte(secret), ttl: ttl, logger: logger}
}

// Login checks the credentials and returns a signed session token plus the
// account's role. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (token string, role string, err error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("login", zap.String("username", user.Username), zap.String("role", user.Role))
	return signed, user.Role, nil
}

// Verify parses and validates a session token, returning its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SessionTTL exposes the configured session lifetime for cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// Bootstrap seeds a single owner account when the users table is empty and
// credentials were provided through the environment. Secrets are never
// hard-coded; without the env pair the table simply stays empty.
func (s *Service) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	if err := s.store.CreateUser(ctx, username, string(hash), models.RoleOwner); err != nil {
		return err
	}

	s.logger.Info("bootstrap owner account created", zap.String("username", username))
	return nil
}
