package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rpupo63/bloghub-backend/errs"
)

const revokedKeyPrefix = "auth:revoked:"

// Tokens issues and verifies HS256 session tokens. Sign-out is implemented
// as a Redis denylist keyed by token ID, expiring with the token itself, so
// revocation needs no per-session rows in Postgres.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
}

// NewTokens builds a token service. rdb may be nil, in which case revocation
// checks are skipped (used by tests that only exercise signing).
func NewTokens(secret string, ttl time.Duration, rdb *redis.Client) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, rdb: rdb}
}

// Issue mints a session token for userID.
func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token, checks the revocation list, and returns the user ID.
func (t *Tokens) Verify(ctx context.Context, raw string) (uuid.UUID, error) {
	claims, err := t.parse(raw)
	if err != nil {
		return uuid.Nil, err
	}

	if t.rdb != nil {
		revoked, err := t.rdb.Exists(ctx, revokedKeyPrefix+claims.ID).Result()
		if err != nil {
			return uuid.Nil, fmt.Errorf("checking token revocation: %w", err)
		}
		if revoked > 0 {
			return uuid.Nil, errs.NewRevokedTokenError()
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}
	return userID, nil
}

// Revoke invalidates the session carried by raw. The denylist entry lives
// exactly as long as the token would have.
func (t *Tokens) Revoke(ctx context.Context, raw string) error {
	claims, err := t.parse(raw)
	if err != nil {
		return err
	}

	if t.rdb == nil {
		return nil
	}

	// parse already validated exp, so remaining is positive; the clamp only
	// covers a token revoked on the exact expiry instant.
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		remaining = time.Second
	}
	if err := t.rdb.Set(ctx, revokedKeyPrefix+claims.ID, 1, remaining).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (t *Tokens) parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewExpiredTokenError()
		}
		return nil, errs.NewInvalidTokenError()
	}
	if !token.Valid {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}
