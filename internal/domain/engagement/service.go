package engagement

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

func (s *Service) ListStimuli(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*StimulusEvent, int, error) {
	return s.repo.ListStimuliByHCP(ctx, hcpID, limit, offset)
}

func (s *Service) ListOutcomes(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*OutcomeEvent, int, error) {
	return s.repo.ListOutcomesByHCP(ctx, hcpID, limit, offset)
}
