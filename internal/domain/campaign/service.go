package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCampaign(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListCampaigns(ctx context.Context, limit, offset int) ([]*Campaign, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListParticipants(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*Participation, int, error) {
	if _, err := s.repo.GetByID(ctx, campaignID); err != nil {
		return nil, 0, fmt.Errorf("campaign not found: %w", err)
	}
	return s.repo.ListParticipationsByCampaign(ctx, campaignID, limit, offset)
}
