package engagement

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	BatchInsertStimuli(ctx context.Context, events []*StimulusEvent) error
	SelectAllStimuli(ctx context.Context) ([]*StimulusEvent, error)
	ListStimuliByHCP(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*StimulusEvent, int, error)
	MarkImpactObserved(ctx context.Context, stimulusIDs []uuid.UUID) error

	BatchInsertOutcomes(ctx context.Context, events []*OutcomeEvent) error
	SelectAllOutcomes(ctx context.Context) ([]*OutcomeEvent, error)
	ListOutcomesByHCP(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*OutcomeEvent, int, error)

	Truncate(ctx context.Context) error
}
