package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/rfm-api/internal/application/ports"
)

var _ ports.CatalogCache = (*CatalogCache)(nil)

// CatalogListsKey hash con un campo por combinación de filtros del catálogo.
const CatalogListsKey = "catalog:lists"

// CatalogCache guarda los listados serializados en un hash con TTL; borrar el hash
// invalida todas las combinaciones de una vez.
type CatalogCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewCatalogCache construye la caché. ttl <= 0 deja las entradas sin expiración.
func NewCatalogCache(rdb goredis.Cmdable, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

// GetList lee un campo del hash.
func (c *CatalogCache) GetList(ctx context.Context, field string) ([]byte, bool, error) {
	b, err := c.rdb.HGet(ctx, CatalogListsKey, field).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("hget %s: %w", CatalogListsKey, err)
	}
	return b, true, nil
}

// SetList escribe un campo y renueva el TTL del hash.
func (c *CatalogCache) SetList(ctx context.Context, field string, payload []byte) error {
	if err := c.rdb.HSet(ctx, CatalogListsKey, field, payload).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", CatalogListsKey, err)
	}
	if c.ttl > 0 {
		if err := c.rdb.Expire(ctx, CatalogListsKey, c.ttl).Err(); err != nil {
			return fmt.Errorf("expire %s: %w", CatalogListsKey, err)
		}
	}
	return nil
}

// Invalidate borra todos los listados.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, CatalogListsKey).Err(); err != nil {
		return fmt.Errorf("del %s: %w", CatalogListsKey, err)
	}
	return nil
}
