package hcp

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

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetProfileByNPI(ctx context.Context, npi string) (*Profile, error) {
	if len(npi) != 10 {
		return nil, fmt.Errorf("invalid NPI: %q", npi)
	}
	return s.repo.GetByNPI(ctx, npi)
}

func (s *Service) ListProfiles(ctx context.Context, limit, offset int) ([]*Profile, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) GetEngagements(ctx context.Context, hcpID uuid.UUID) ([]*ChannelEngagement, error) {
	return s.repo.GetEngagements(ctx, hcpID)
}
