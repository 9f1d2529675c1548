package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/rfm-api/internal/application/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

const revokedPrefix = "auth:revoked:"

// TokenStore lista de revocación de JWT indexada por jti.
type TokenStore struct {
	rdb goredis.Cmdable
}

// NewTokenStore construye el almacén.
func NewTokenStore(rdb goredis.Cmdable) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// Revoke marca el jti como revocado durante ttl (el resto de vida del token).
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la lista.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("consultar revocación: %w", err)
	}
	return n > 0, nil
}
