package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/application/tenant"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/pkg/jwt"
)

// Locals keys para los datos del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalAccess    = "access"
	LocalClaims    = "claims"
)

// revocationChecker lo implementa *auth.AuthUseCase; la interfaz evita acoplar el middleware al caso de uso.
type revocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados en el logout
// y deja UserID, CompanyID, Access y los claims en c.Locals. revoked puede ser nil.
func AuthMiddleware(jwtSecret string, revoked revocationChecker) fiber.Handler {
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
		if err != nil || claims.UserID == "" || claims.CompanyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				log.Error().Err(err).Str("jti", claims.ID).Msg("no se pudo consultar la revocación del token")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TOKEN_CHECK_FAILED", Message: "no se pudo validar el token, intente más tarde"})
			}
			if isRevoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la sesión fue cerrada"})
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalAccess, claims.Access)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireSuperUser corta con 403 si el token no es de un superusuario.
// La pertenencia a la empresa destino la sigue validando el caso de uso.
func RequireSuperUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !entity.IsSuperUserAccess(GetAccess(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere un superusuario"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	return localString(c, LocalCompanyID)
}

// GetAccess nivel de acceso del token.
func GetAccess(c *fiber.Ctx) string {
	return localString(c, LocalAccess)
}

// GetClaims claims completos; nil fuera de rutas protegidas.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// callerFrom arma la identidad que consumen los casos de uso.
func callerFrom(c *fiber.Ctx) tenant.Caller {
	return tenant.Caller{
		UserID:    GetUserID(c),
		CompanyID: GetCompanyID(c),
		Access:    GetAccess(c),
	}
}

// targetFrom empresa destino pedida por query (subCompanyId | sub_company_id).
func targetFrom(c *fiber.Ctx) string {
	var q dto.TargetQuery
	if err := c.QueryParser(&q); err != nil {
		return ""
	}
	return strings.TrimSpace(q.Requested())
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
