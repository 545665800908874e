package hcp

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	BatchInsert(ctx context.Context, profiles []*Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByNPI(ctx context.Context, npi string) (*Profile, error)
	List(ctx context.Context, limit, offset int) ([]*Profile, int, error)
	SelectAll(ctx context.Context) ([]*Profile, error)
	Truncate(ctx context.Context) error

	// Per-channel engagement sub-records.
	BatchInsertEngagements(ctx context.Context, engs []*ChannelEngagement) error
	GetEngagements(ctx context.Context, hcpID uuid.UUID) ([]*ChannelEngagement, error)
	TruncateEngagements(ctx context.Context) error
}
