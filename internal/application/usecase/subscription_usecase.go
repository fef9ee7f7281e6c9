package usecase

import (
	"context"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

// SubscriptionService expone el catálogo estático de planes.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
}

// NewSubscriptionService construye el servicio de planes.
func NewSubscriptionService(subscriptions repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions}
}

// ListPlans los cinco planes sembrados, por id.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.subscriptions.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, entityToPlanResponse(p))
	}
	return out, nil
}
