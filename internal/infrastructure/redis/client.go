// Package redis implementa la caché del catálogo y la revocación de tokens sobre Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/rfm-api/pkg/config"
)

// NewClient conecta a Redis reintentando el ping. Devuelve (nil, nil) si Redis está deshabilitado.
func NewClient(ctx context.Context, cfg config.RedisConfig, maxRetries int) (*goredis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = rdb.Ping(ctx).Err(); lastErr == nil {
			return rdb, nil
		}
		log.Warn().Err(lastErr).Int("intento", i).Int("max", maxRetries).Msg("redis: ping fallido")
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("conectar redis %s: %w", cfg.Addr, lastErr)
}

// Pinger adapta el cliente al health check.
type Pinger struct {
	rdb goredis.Cmdable
}

// NewPinger construye el adaptador.
func NewPinger(rdb goredis.Cmdable) *Pinger { return &Pinger{rdb: rdb} }

// Ping devuelve el error del comando PING.
func (p *Pinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
