package campaign

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	BatchInsert(ctx context.Context, campaigns []*Campaign) error
	SelectAll(ctx context.Context) ([]*Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	List(ctx context.Context, limit, offset int) ([]*Campaign, int, error)

	BatchInsertParticipations(ctx context.Context, parts []*Participation) error
	SelectAllParticipations(ctx context.Context) ([]*Participation, error)
	ListParticipationsByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*Participation, int, error)

	Truncate(ctx context.Context) error
}
