package territory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	BatchInsertReps(ctx context.Context, reps []*Rep) error
	SelectAllReps(ctx context.Context) ([]*Rep, error)
	ListReps(ctx context.Context, limit, offset int) ([]*Rep, int, error)

	BatchInsertAssignments(ctx context.Context, assignments []*Assignment) error
	SelectAllAssignments(ctx context.Context) ([]*Assignment, error)
	ListAssignments(ctx context.Context, limit, offset int) ([]*Assignment, int, error)
	ListAssignmentsByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Assignment, error)

	Truncate(ctx context.Context) error
}
