package usecase

import (
	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		ABN:             c.ABN,
		ContactNumber:   c.ContactNumber,
		Location:        c.Location,
		ParentCompanyID: c.ParentCompanyID,
		IsSubCompany:    c.IsSubCompany(),
		CreatedAt:       c.CreatedAt,
	}
}

// entityToUserResponse salida pública de un usuario.
func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                      u.ID,
		CompanyID:               u.CompanyID,
		EmployeeNumber:          u.EmployeeNumber,
		FirstName:               u.FirstName,
		MiddleName:              u.MiddleName,
		LastName:                u.LastName,
		FullName:                u.FullName(),
		Email:                   u.Email,
		BusinessUnit:            u.BusinessUnit,
		AccessLevel:             u.AccessLevel,
		ContactNumber:           u.ContactNumber,
		Location:                u.Location,
		IsActive:                u.IsActive,
		IsFirstLogin:            u.IsFirstLogin,
		IsResetPasswordRequired: u.IsResetPasswordRequired,
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}
}

func entityToPlanResponse(p *entity.SubscriptionPlan) dto.PlanResponse {
	out := dto.PlanResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		AdditionalSeatPrice:    p.AdditionalSeatPrice,
		BaseSeats:              p.BaseSeats,
		MaxHC:                  p.MaxHC,
		SuperUsersIncluded:     p.SuperUsersIncluded,
		AdditionalSeatsAllowed: p.AdditionalSeatsAllowed,
		APIAccess:              p.APIAccess,
		ReportingLevel:         p.ReportingLevel,
		IdealFor:               p.IdealFor,
		KeyFeatures:            p.KeyFeatures,
		AllowsSubCompanies:     p.PermitsSubCompanies(),
	}
	if p.Price.Valid {
		price := p.Price.Decimal
		out.Price = &price
	}
	return out
}
