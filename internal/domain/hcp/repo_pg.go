package hcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

const profileCols = `id, npi, first_name, last_name, specialty, tier, segment,
	preferred_channel, city, state, region, engagement_score,
	monthly_rx_volume, yearly_rx_volume, market_share_pct, rx_trend, rx_trend_drift,
	conversion_likelihood, churn_risk, created_at, updated_at`

func (r *repoPG) BatchInsert(ctx context.Context, profiles []*Profile) error {
	rows := make([][]interface{}, len(profiles))
	for i, p := range profiles {
		p.ID = uuid.New()
		rows[i] = []interface{}{
			p.ID, p.NPI, p.FirstName, p.LastName, string(p.Specialty), p.Tier,
			string(p.Segment), string(p.PreferredChannel), p.City, p.State, p.Region,
			p.EngagementScore, p.MonthlyRxVolume, p.YearlyRxVolume, p.MarketSharePct,
			p.RxTrend, p.RxTrendDrift, p.ConversionLikelihood, p.ChurnRisk,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"hcp_profile"},
		[]string{"id", "npi", "first_name", "last_name", "specialty", "tier",
			"segment", "preferred_channel", "city", "state", "region",
			"engagement_score", "monthly_rx_volume", "yearly_rx_volume",
			"market_share_pct", "rx_trend", "rx_trend_drift",
			"conversion_likelihood", "churn_risk"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM hcp_profile WHERE id = $1`, id))
}

func (r *repoPG) GetByNPI(ctx context.Context, npi string) (*Profile, error) {
	return scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM hcp_profile WHERE npi = $1`, npi))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Profile, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM hcp_profile`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+profileCols+` FROM hcp_profile ORDER BY npi LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	profiles, err := collectProfiles(rows)
	return profiles, total, err
}

func (r *repoPG) SelectAll(ctx context.Context) ([]*Profile, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+profileCols+` FROM hcp_profile ORDER BY npi`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE hcp_profile CASCADE`)
	return err
}

func (r *repoPG) BatchInsertEngagements(ctx context.Context, engs []*ChannelEngagement) error {
	rows := make([][]interface{}, len(engs))
	for i, e := range engs {
		e.ID = uuid.New()
		rows[i] = []interface{}{
			e.ID, e.HCPID, string(e.Channel), e.Score, e.TouchCount, e.ResponseRate, e.LastContact,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"hcp_channel_engagement"},
		[]string{"id", "hcp_id", "channel", "score", "touch_count", "response_rate", "last_contact"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) GetEngagements(ctx context.Context, hcpID uuid.UUID) ([]*ChannelEngagement, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, hcp_id, channel, score, touch_count, response_rate, last_contact, created_at
		FROM hcp_channel_engagement WHERE hcp_id = $1 ORDER BY channel`, hcpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var engs []*ChannelEngagement
	for rows.Next() {
		e := &ChannelEngagement{}
		var channel string
		if err := rows.Scan(&e.ID, &e.HCPID, &channel, &e.Score, &e.TouchCount,
			&e.ResponseRate, &e.LastContact, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Channel = Channel(channel)
		engs = append(engs, e)
	}
	return engs, rows.Err()
}

func (r *repoPG) TruncateEngagements(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE hcp_channel_engagement`)
	return err
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	var specialty, segment, preferred string
	err := row.Scan(&p.ID, &p.NPI, &p.FirstName, &p.LastName, &specialty, &p.Tier,
		&segment, &preferred, &p.City, &p.State, &p.Region, &p.EngagementScore,
		&p.MonthlyRxVolume, &p.YearlyRxVolume, &p.MarketSharePct, &p.RxTrend,
		&p.RxTrendDrift, &p.ConversionLikelihood, &p.ChurnRisk, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Specialty = Specialty(specialty)
	p.Segment = Segment(segment)
	p.PreferredChannel = Channel(preferred)
	return p, nil
}

func collectProfiles(rows pgx.Rows) ([]*Profile, error) {
	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var specialty, segment, preferred string
		if err := rows.Scan(&p.ID, &p.NPI, &p.FirstName, &p.LastName, &specialty, &p.Tier,
			&segment, &preferred, &p.City, &p.State, &p.Region, &p.EngagementScore,
			&p.MonthlyRxVolume, &p.YearlyRxVolume, &p.MarketSharePct, &p.RxTrend,
			&p.RxTrendDrift, &p.ConversionLikelihood, &p.ChurnRisk, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Specialty = Specialty(specialty)
		p.Segment = Segment(segment)
		p.PreferredChannel = Channel(preferred)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
