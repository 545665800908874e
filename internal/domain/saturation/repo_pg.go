package saturation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const exposureCols = `id, hcp_id, theme, touch_frequency, unique_channels,
	channel_diversity, avg_gap_days, engagement_rate, engagement_decay,
	adoption_stage, msi, risk_tier, direction, window_start, window_end, created_at`

func (r *repoPG) BatchInsert(ctx context.Context, exposures []*Exposure) error {
	rows := make([][]interface{}, len(exposures))
	for i, e := range exposures {
		e.ID = uuid.New()
		rows[i] = []interface{}{
			e.ID, e.HCPID, string(e.Theme), e.TouchFrequency, e.UniqueChannels,
			e.ChannelDiversity, e.AvgGapDays, e.EngagementRate, e.EngagementDecay,
			string(e.AdoptionStage), e.MSI, string(e.RiskTier), string(e.Direction),
			e.WindowStart, e.WindowEnd,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"message_exposure"},
		[]string{"id", "hcp_id", "theme", "touch_frequency", "unique_channels",
			"channel_diversity", "avg_gap_days", "engagement_rate", "engagement_decay",
			"adoption_stage", "msi", "risk_tier", "direction", "window_start", "window_end"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) SelectAll(ctx context.Context) ([]*Exposure, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+exposureCols+` FROM message_exposure ORDER BY hcp_id, theme`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExposures(rows)
}

func (r *repoPG) ListByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Exposure, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+exposureCols+` FROM message_exposure WHERE hcp_id = $1 ORDER BY theme`, hcpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExposures(rows)
}

func (r *repoPG) Summary(ctx context.Context) ([]*TierCount, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT risk_tier, COUNT(*) FROM message_exposure GROUP BY risk_tier ORDER BY risk_tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var counts []*TierCount
	for rows.Next() {
		tc := &TierCount{}
		var tier string
		if err := rows.Scan(&tier, &tc.Count); err != nil {
			return nil, err
		}
		tc.RiskTier = RiskTier(tier)
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE message_exposure`)
	return err
}

func collectExposures(rows pgx.Rows) ([]*Exposure, error) {
	var exposures []*Exposure
	for rows.Next() {
		e := &Exposure{}
		var theme, stage, tier, direction string
		if err := rows.Scan(&e.ID, &e.HCPID, &theme, &e.TouchFrequency, &e.UniqueChannels,
			&e.ChannelDiversity, &e.AvgGapDays, &e.EngagementRate, &e.EngagementDecay,
			&stage, &e.MSI, &tier, &direction, &e.WindowStart, &e.WindowEnd,
			&e.CreatedAt); err != nil {
			return nil, err
		}
		e.Theme = Theme(theme)
		e.AdoptionStage = hcp.AdoptionStage(stage)
		e.RiskTier = RiskTier(tier)
		e.Direction = Direction(direction)
		exposures = append(exposures, e)
	}
	return exposures, rows.Err()
}
