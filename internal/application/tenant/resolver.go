package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// Resolver decide contra qué empresa opera un usuario: su empresa de origen o una subempresa
// que tenga asignada. Solo lectura.
type Resolver struct {
	companies   repository.CompanyRepository
	assignments repository.AssignmentRepository
}

// NewResolver construye el resolvedor de tenant.
func NewResolver(companies repository.CompanyRepository, assignments repository.AssignmentRepository) *Resolver {
	return &Resolver{companies: companies, assignments: assignments}
}

// ResolveTarget devuelve el id de empresa destino.
//
// Con requestedID: la empresa de origen siempre es accesible; cualquier otra debe ser hija directa
// de homeID y tener una asignación para el usuario (ErrAccessDenied si no).
// Sin requestedID: cero asignaciones bajo homeID = homeID, una = esa subempresa,
// más de una = ErrAmbiguousTarget.
func (r *Resolver) ResolveTarget(ctx context.Context, homeID, userID, requestedID string) (string, error) {
	requestedID = strings.TrimSpace(requestedID)
	if requestedID != "" {
		return r.resolveExplicit(ctx, homeID, userID, requestedID)
	}

	subIDs, err := r.assignments.ListSubCompanyIDsForUser(ctx, userID, homeID)
	if err != nil {
		return "", err
	}
	switch distinct := dedupe(subIDs); len(distinct) {
	case 0:
		return homeID, nil
	case 1:
		return distinct[0], nil
	default:
		return "", fmt.Errorf("%w: user is assigned to %d sub-companies; specify subCompanyId explicitly",
			domain.ErrAmbiguousTarget, len(distinct))
	}
}

func (r *Resolver) resolveExplicit(ctx context.Context, homeID, userID, requestedID string) (string, error) {
	if requestedID == homeID {
		return homeID, nil
	}
	company, err := r.companies.GetByID(ctx, requestedID)
	if err != nil {
		return "", err
	}
	if company == nil || company.ParentCompanyID != homeID {
		return "", fmt.Errorf("%w: company is not a sub-company of your company", domain.ErrAccessDenied)
	}
	ok, err := r.assignments.Exists(ctx, requestedID, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: you are not assigned to this sub-company", domain.ErrAccessDenied)
	}
	return requestedID, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
