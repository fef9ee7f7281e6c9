package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const planColumns = `id, name, price, additional_seat_price, base_seats, max_hc, super_users_included,
	additional_seats_allowed, api_access, reporting_level, ideal_for, key_features, allows_sub_companies`

// SubscriptionRepo catálogo de planes (sembrado por migración) y suscripciones de empresas.
type SubscriptionRepo struct {
	db DB
}

// NewSubscriptionRepository construye el adaptador de suscripciones.
func NewSubscriptionRepository(db DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// ListPlans devuelve el catálogo ordenado por nivel (los ids fijos siguen el orden del catálogo).
func (r *SubscriptionRepo) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM subscription_plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetPlan obtiene un plan por id.
func (r *SubscriptionRepo) GetPlan(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	p, err := scanPlan(r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM subscription_plans WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

func scanPlan(row pgx.Row) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.AdditionalSeatPrice, &p.BaseSeats, &p.MaxHC, &p.SuperUsersIncluded,
		&p.AdditionalSeatsAllowed, &p.APIAccess, &p.ReportingLevel, &p.IdealFor, &p.KeyFeatures, &p.AllowsSubCompanies,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateCompanySubscription persiste la copia del plan comprado.
func (r *SubscriptionRepo) CreateCompanySubscription(ctx context.Context, sub *entity.CompanySubscription) error {
	query := `
		INSERT INTO company_subscriptions (id, company_id, plan_id, plan_name, base_seats, additional_seats,
			additional_seat_price, total_monthly_price, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		sub.ID, sub.CompanyID, sub.PlanID, sub.PlanName, sub.BaseSeats, sub.AdditionalSeats,
		sub.AdditionalSeatPrice, sub.TotalMonthlyPrice, sub.StartDate, sub.EndDate,
	)
	if err != nil {
		return fmt.Errorf("insert company subscription: %w", err)
	}
	return nil
}

// GetLatestByCompany suscripción más reciente por fecha de inicio.
func (r *SubscriptionRepo) GetLatestByCompany(ctx context.Context, companyID string) (*entity.CompanySubscription, error) {
	query := `
		SELECT id, company_id, plan_id, plan_name, base_seats, additional_seats,
			additional_seat_price, total_monthly_price, start_date, end_date
		FROM company_subscriptions WHERE company_id = $1
		ORDER BY start_date DESC LIMIT 1`
	var s entity.CompanySubscription
	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.PlanName, &s.BaseSeats, &s.AdditionalSeats,
		&s.AdditionalSeatPrice, &s.TotalMonthlyPrice, &s.StartDate, &s.EndDate,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest subscription: %w", err)
	}
	return &s, nil
}
