package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardSuperUser primer superusuario de una empresa nueva.
type OnboardSuperUser struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	MiddleName    string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      string `json:"last_name" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=30"`
	Location      string `json:"location" validate:"omitempty,max=200"`
}

// OnboardCompanyRequest alta de una empresa con su plan y su primer superusuario.
type OnboardCompanyRequest struct {
	CompanyName     string           `json:"company_name" validate:"required,max=200"`
	ABN             string           `json:"abn" validate:"omitempty,taxid"`
	ContactNumber   string           `json:"contact_number" validate:"omitempty,max=30"`
	Location        string           `json:"location" validate:"omitempty,max=200"`
	PlanID          string           `json:"plan_id" validate:"required"`
	AdditionalSeats int              `json:"additional_seats" validate:"min=0"`
	SuperUser       OnboardSuperUser `json:"super_user" validate:"required"`
}

// OnboardCompanyResponse ids creados en el onboarding.
type OnboardCompanyResponse struct {
	CompanyID         string          `json:"company_id"`
	SubscriptionID    string          `json:"subscription_id"`
	SuperUserID       string          `json:"super_user_id"`
	TotalMonthlyPrice decimal.Decimal `json:"total_monthly_price"`
	Message           string          `json:"message"`
}

// UpdateCompanyRequest datos editables de la empresa efectiva.
type UpdateCompanyRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	ABN           string `json:"abn" validate:"omitempty,taxid"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=30"`
	Location      string `json:"location" validate:"omitempty,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ABN             string    `json:"abn,omitempty"`
	ContactNumber   string    `json:"contact_number,omitempty"`
	Location        string    `json:"location,omitempty"`
	ParentCompanyID string    `json:"parent_company_id,omitempty"`
	IsSubCompany    bool      `json:"is_sub_company"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateSubCompanyRequest alta de una subempresa; SuperUserIDs son superusuarios del padre a delegar.
type CreateSubCompanyRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	ABN           string   `json:"abn" validate:"omitempty,taxid"`
	ContactNumber string   `json:"contact_number" validate:"omitempty,max=30"`
	Location      string   `json:"location" validate:"omitempty,max=200"`
	SuperUserIDs  []string `json:"super_user_ids" validate:"omitempty,dive,required"`
}

// AssignSuperUsersRequest delega superusuarios del padre sobre una subempresa.
type AssignSuperUsersRequest struct {
	UserIDs         []string `json:"user_ids" validate:"dive,required"`
	ReplaceExisting bool     `json:"replace_existing"`
}

// SubCompanyResponse subempresa con sus superusuarios asignados.
type SubCompanyResponse struct {
	CompanyResponse
	SuperUserIDs []string `json:"super_user_ids"`
}

// SuperUserOption superusuario del padre para desplegables.
type SuperUserOption struct {
	ID             string `json:"id"`
	EmployeeNumber int    `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
}

// CompanyOption empresa a la que un usuario puede cambiar de contexto.
type CompanyOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	IsParent bool   `json:"is_parent"`
}

// PlanResponse entrada del catálogo de planes. Price nulo = contactar a ventas.
type PlanResponse struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Price                  *decimal.Decimal `json:"price"`
	AdditionalSeatPrice    decimal.Decimal  `json:"additional_seat_price"`
	BaseSeats              int              `json:"base_seats"`
	MaxHC                  *int             `json:"max_hc"`
	SuperUsersIncluded     int              `json:"super_users_included"`
	AdditionalSeatsAllowed bool             `json:"additional_seats_allowed"`
	APIAccess              bool             `json:"api_access"`
	ReportingLevel         string           `json:"reporting_level"`
	IdealFor               string           `json:"ideal_for"`
	KeyFeatures            string           `json:"key_features"`
	AllowsSubCompanies     bool             `json:"allows_sub_companies"`
}
