package prescribing

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

func (s *Service) History(ctx context.Context, hcpID uuid.UUID) ([]*Record, error) {
	return s.repo.ListByHCP(ctx, hcpID)
}
