package territory

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

func (s *Service) ListReps(ctx context.Context, limit, offset int) ([]*Rep, int, error) {
	return s.repo.ListReps(ctx, limit, offset)
}

func (s *Service) ListAssignments(ctx context.Context, limit, offset int) ([]*Assignment, int, error) {
	return s.repo.ListAssignments(ctx, limit, offset)
}

func (s *Service) GetAssignmentsForHCP(ctx context.Context, hcpID uuid.UUID) ([]*Assignment, error) {
	return s.repo.ListAssignmentsByHCP(ctx, hcpID)
}
