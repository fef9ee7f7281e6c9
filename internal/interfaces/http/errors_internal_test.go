package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
)

func errorResponseFor(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validación", fmt.Errorf("%w: company name is required", domain.ErrValidation), 400, "VALIDATION", "company name is required"},
		{"ambigua", fmt.Errorf("%w: multiple sub-companies assigned", domain.ErrAmbiguousTarget), 400, "AMBIGUOUS_TARGET", "multiple sub-companies assigned"},
		{"no encontrado", fmt.Errorf("%w: user", domain.ErrNotFound), 404, "NOT_FOUND", "user"},
		{"acceso", domain.ErrAccessDenied, 403, "FORBIDDEN", "acceso denegado"},
		{"conflicto", fmt.Errorf("%w: email already in use", domain.ErrConflict), 409, "CONFLICT", "email already in use"},
		{"operación", fmt.Errorf("%w: cannot inactivate yourself", domain.ErrInvalidOperation), 400, "INVALID_OPERATION", "cannot inactivate yourself"},
		{"superusuario en subempresa", domain.ErrSuperUserInSubCompany, 409, "CONFLICT", domain.ErrSuperUserInSubCompany.Msg},
		{"credenciales", domain.ErrUnauthorized, 401, "UNAUTHORIZED", "no autorizado"},
		{"inactiva", domain.ErrInactiveAccount, 401, "INACTIVE_ACCOUNT", "cuenta inactiva"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponseFor(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestRespondError_UnknownIsGeneric500(t *testing.T) {
	status, body := errorResponseFor(t, errors.New("pq: connection refused on 10.0.0.5"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5")
}
