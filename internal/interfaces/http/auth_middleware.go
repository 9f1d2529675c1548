package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/domain/person"
	"github.com/jhoicas/rfm-api/pkg/jwt"
)

// Locals keys que deja el AuthMiddleware en Fiber.
const (
	LocalUserID = "user_id"
	LocalKind   = "kind"
	LocalRoles  = "roles"
	LocalClaims = "claims"
)

// revocationChecker es el contrato mínimo para consultar tokens revocados.
// Lo implementa *auth.AuthUseCase; el uso de interfaz evita el import circular.
type revocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga user_id, kind, roles y claims en c.Locals.
// Si checker no es nil, rechaza tokens revocados por logout.
func AuthMiddleware(jwtSecret string, checker revocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if checker != nil && claims.ID != "" {
			revoked, err := checker.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				log.Error().Err(err).Str("jti", claims.ID).Msg("no se pudo consultar la revocación del token")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar el token, intente más tarde"})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la sesión fue cerrada"})
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalKind, claims.Kind)
		c.Locals(LocalRoles, claims.Roles)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole exige que el token tenga al menos uno de los roles indicados.
// La comparación ignora mayúsculas. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 MISSING_ROLE → el token no trae roles.
//   - 403 FORBIDDEN    → ningún rol coincide.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye roles"})
		}
		for _, want := range allowed {
			if person.HasRole(roles, want) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permisos para este recurso"})
	}
}

// RequireKind exige un tipo de cuenta concreto (customer | employee).
func RequireKind(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetKind(c) != kind {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "tipo de cuenta sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetKind devuelve el tipo de cuenta del token.
func GetKind(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalKind).(string)
	return s
}

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	r, _ := c.Locals(LocalRoles).([]string)
	return r
}

// GetRole devuelve el primer rol del token o "" si no tiene.
func GetRole(c *fiber.Ctx) string {
	if r := GetRoles(c); len(r) > 0 {
		return r[0]
	}
	return ""
}

// GetClaims devuelve los claims completos (necesarios para logout).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}
