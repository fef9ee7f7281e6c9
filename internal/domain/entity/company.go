package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una organización/tenant. Con ParentCompanyID no vacío es una subempresa.
type Company struct {
	ID              string
	Name            string
	ABN             string // tax id de 11 dígitos, opcional
	ContactNumber   string
	Location        string
	ParentCompanyID string // "" = empresa raíz
	CreatedAt       time.Time
}

// IsSubCompany indica si la empresa cuelga de otra.
func (c *Company) IsSubCompany() bool {
	return c.ParentCompanyID != ""
}

// ValidABN el tax id es opcional; si viene, son exactamente 11 dígitos.
func ValidABN(abn string) bool {
	if abn == "" {
		return true
	}
	if len(abn) != 11 {
		return false
	}
	for _, r := range abn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Ids fijos del catálogo de planes (sembrados por la migración 000002).
const (
	PlanDemoID           = "11111111-1111-1111-1111-111111111111"
	PlanStarterID        = "22222222-2222-2222-2222-222222222222"
	PlanBusinessID       = "33333333-3333-3333-3333-333333333333"
	PlanEnterpriseID     = "44444444-4444-4444-4444-444444444444"
	PlanEnterprisePlusID = "55555555-5555-5555-5555-555555555555"

	PlanEnterprisePlusName = "Enterprise Plus"
)

// SubscriptionPlan entrada del catálogo. Price nulo = contrato a medida.
type SubscriptionPlan struct {
	ID                     string
	Name                   string
	Price                  decimal.NullDecimal
	AdditionalSeatPrice    decimal.Decimal
	BaseSeats              int
	MaxHC                  *int // nil = sin tope
	SuperUsersIncluded     int
	AdditionalSeatsAllowed bool
	APIAccess              bool
	ReportingLevel         string
	IdealFor               string
	KeyFeatures            string
	AllowsSubCompanies     bool
}

// PermitsSubCompanies solo el plan superior admite subempresas (por id o por nombre).
func (p *SubscriptionPlan) PermitsSubCompanies() bool {
	if p == nil {
		return false
	}
	return p.AllowsSubCompanies || p.ID == PlanEnterprisePlusID ||
		strings.EqualFold(strings.TrimSpace(p.Name), PlanEnterprisePlusName)
}

// CompanySubscription copia del plan comprado; protege la facturación histórica de cambios del catálogo.
type CompanySubscription struct {
	ID                  string
	CompanyID           string
	PlanID              string
	PlanName            string
	BaseSeats           int
	AdditionalSeats     int
	AdditionalSeatPrice decimal.Decimal
	TotalMonthlyPrice   decimal.Decimal
	StartDate           time.Time
	EndDate             *time.Time
}

// IsActive la suscripción no tiene fin o termina después de now.
func (s *CompanySubscription) IsActive(now time.Time) bool {
	return s != nil && (s.EndDate == nil || s.EndDate.After(now))
}

// CompanySuperUserAssignment delega un superusuario de la empresa padre sobre una subempresa.
type CompanySuperUserAssignment struct {
	CompanyID string // subempresa
	UserID    string
	CreatedAt time.Time
}
