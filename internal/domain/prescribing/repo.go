package prescribing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	BatchInsert(ctx context.Context, records []*Record) error
	SelectAll(ctx context.Context) ([]*Record, error)
	ListByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Record, error)
	Truncate(ctx context.Context) error
}
