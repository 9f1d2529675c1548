package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/rfm-api/internal/application/dto"
)

const (
	// limiterIdleTTL tiempo sin solicitudes tras el cual se olvida una IP.
	limiterIdleTTL = 10 * time.Minute
	// limiterSweepEvery frecuencia mínima entre barridos del mapa.
	limiterSweepEvery = time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter mantiene un token bucket por IP de cliente. Las IPs inactivas
// se eliminan en barridos perezosos dentro de GetLimiter.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*ipLimiter
	r         rate.Limit // solicitudes por segundo
	b         int        // ráfaga
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter construye el limitador.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:     make(map[string]*ipLimiter),
		r:       r,
		b:       b,
		idleTTL: limiterIdleTTL,
		now:     time.Now,
	}
}

// GetLimiter devuelve (o crea) el limitador de la clave indicada.
func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= limiterSweepEvery {
		i.sweep(now)
	}
	e, ok := i.ips[key]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Len número de IPs en memoria.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

func (i *IPRateLimiter) sweep(now time.Time) {
	for key, e := range i.ips {
		if now.Sub(e.lastSeen) > i.idleTTL {
			delete(i.ips, key)
		}
	}
	i.lastSweep = now
}

// RateLimitByIP responde 429 cuando la IP supera el límite configurado.
func RateLimitByIP(r rate.Limit, b int) fiber.Handler {
	limiter := NewIPRateLimiter(r, b)
	return func(c *fiber.Ctx) error {
		if !limiter.GetLimiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente más tarde"})
		}
		return c.Next()
	}
}
