package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
)

// errorMapping sentinel de dominio -> status y código HTTP. El orden importa:
// el primero que cumpla errors.Is gana.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrAmbiguousTarget, fiber.StatusBadRequest, "AMBIGUOUS_TARGET"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAccessDenied, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidOperation, fiber.StatusBadRequest, "INVALID_OPERATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInactiveAccount, fiber.StatusUnauthorized, "INACTIVE_ACCOUNT"},
	{domain.ErrTokenRevoked, fiber.StatusUnauthorized, "TOKEN_REVOKED"},
}

// respondError traduce un error de caso de uso a la respuesta HTTP.
// Los errores no mapeados se registran y salen como 500 con mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	var rule *domain.RuleError
	if errors.As(err, &rule) && rule == domain.ErrSuperUserInSubCompany {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: rule.Msg})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: clientMessage(err, m.err)})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// clientMessage quita el prefijo del sentinel ("entrada inválida: ...") y deja el detalle.
func clientMessage(err, base error) string {
	var rule *domain.RuleError
	if errors.As(err, &rule) {
		return rule.Msg
	}
	msg := err.Error()
	if detail := strings.TrimPrefix(msg, base.Error()+": "); detail != msg && detail != "" {
		return detail
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
