package ports

import (
	"context"
	"time"
)

// CatalogCache define el puerto de caché para los listados del catálogo.
// Cada combinación de filtros es un campo; Invalidate descarta todos a la vez.
type CatalogCache interface {
	// GetList devuelve (nil, false, nil) cuando el campo no está en caché.
	GetList(ctx context.Context, field string) ([]byte, bool, error)
	SetList(ctx context.Context, field string, payload []byte) error
	Invalidate(ctx context.Context) error
}

// TokenStore registra los jti de tokens revocados (logout) hasta su expiración.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
