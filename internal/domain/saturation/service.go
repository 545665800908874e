package saturation

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ExposuresForHCP(ctx context.Context, hcpID uuid.UUID) ([]*Exposure, error) {
	return s.repo.ListByHCP(ctx, hcpID)
}

func (s *Service) Summary(ctx context.Context) ([]*TierCount, error) {
	return s.repo.Summary(ctx)
}
