package saturation

import (
	"context"

	"github.com/google/uuid"
)

// TierCount is one row of the risk-tier summary.
type TierCount struct {
	RiskTier RiskTier `db:"risk_tier" json:"risk_tier"`
	Count    int      `db:"count" json:"count"`
}

type Repository interface {
	BatchInsert(ctx context.Context, exposures []*Exposure) error
	SelectAll(ctx context.Context) ([]*Exposure, error)
	ListByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Exposure, error)
	Summary(ctx context.Context) ([]*TierCount, error)
	Truncate(ctx context.Context) error
}
