package tenant

import (
	"context"
	"fmt"

	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// Guard comprobaciones de rol y propiedad sobre el resultado del Resolver.
type Guard struct {
	users repository.UserRepository
}

// NewGuard construye el guard.
func NewGuard(users repository.UserRepository) *Guard {
	return &Guard{users: users}
}

// RequireSuperUserOfHome exige que el usuario sea superusuario activo de su empresa de origen.
// Devuelve el usuario cargado.
func (g *Guard) RequireSuperUserOfHome(ctx context.Context, userID, homeID string) (*entity.User, error) {
	user, err := g.users.GetByIDAndCompany(ctx, userID, homeID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || !user.IsSuperUser() {
		return nil, fmt.Errorf("%w: only an active super user of this company can perform this action", domain.ErrAccessDenied)
	}
	return user, nil
}

// ForbidSuperUserCreationInSubCompany una subempresa no puede tener superusuarios propios;
// se delegan los del padre mediante asignación.
func ForbidSuperUserCreationInSubCompany(target *entity.Company, accessLevel string) error {
	if target != nil && target.IsSubCompany() && entity.IsSuperUserAccess(accessLevel) {
		return domain.ErrSuperUserInSubCompany
	}
	return nil
}

// RequireSameTenant el usuario a modificar debe pertenecer a la empresa resuelta.
func RequireSameTenant(user *entity.User, targetCompanyID string) error {
	if user == nil || user.CompanyID != targetCompanyID {
		return fmt.Errorf("%w: user does not belong to the selected company", domain.ErrAccessDenied)
	}
	return nil
}
