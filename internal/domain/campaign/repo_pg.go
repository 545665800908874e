package campaign

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

const campaignCols = `id, name, campaign_type, status, primary_channel, channel_mix,
	targeting, goal_type, goal_value, budget_usd, spend_usd, start_date, end_date, created_at`

func (r *repoPG) BatchInsert(ctx context.Context, campaigns []*Campaign) error {
	rows := make([][]interface{}, len(campaigns))
	for i, c := range campaigns {
		c.ID = uuid.New()
		rows[i] = []interface{}{
			c.ID, c.Name, string(c.Type), string(c.Status), string(c.PrimaryChannel),
			c.ChannelMix, c.Targeting, string(c.GoalType), c.GoalValue,
			c.BudgetUSD, c.SpendUSD, c.StartDate, c.EndDate,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"campaign"},
		[]string{"id", "name", "campaign_type", "status", "primary_channel", "channel_mix",
			"targeting", "goal_type", "goal_value", "budget_usd", "spend_usd",
			"start_date", "end_date"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) SelectAll(ctx context.Context) ([]*Campaign, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+campaignCols+` FROM campaign ORDER BY start_date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCampaigns(rows)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+campaignCols+` FROM campaign WHERE id = $1`, id)
	return scanCampaign(row)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Campaign, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM campaign`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+campaignCols+` FROM campaign ORDER BY start_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	campaigns, err := collectCampaigns(rows)
	return campaigns, total, err
}

func (r *repoPG) BatchInsertParticipations(ctx context.Context, parts []*Participation) error {
	rows := make([][]interface{}, len(parts))
	for i, p := range parts {
		p.ID = uuid.New()
		rows[i] = []interface{}{p.ID, p.CampaignID, p.HCPID, string(p.Status), p.EnrolledAt, p.OptOutReason, p.OptedOutAt}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"campaign_participation"},
		[]string{"id", "campaign_id", "hcp_id", "status", "enrolled_at", "opt_out_reason", "opted_out_at"},
		pgx.CopyFromRows(rows))
	return err
}

const participationCols = `id, campaign_id, hcp_id, status, enrolled_at, opt_out_reason, opted_out_at, created_at`

func (r *repoPG) SelectAllParticipations(ctx context.Context) ([]*Participation, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+participationCols+` FROM campaign_participation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParticipations(rows)
}

func (r *repoPG) ListParticipationsByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*Participation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM campaign_participation WHERE campaign_id = $1`, campaignID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+participationCols+` FROM campaign_participation WHERE campaign_id = $1 ORDER BY enrolled_at LIMIT $2 OFFSET $3`,
		campaignID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	parts, err := collectParticipations(rows)
	return parts, total, err
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE campaign_participation, campaign CASCADE`)
	return err
}

func scanCampaign(row pgx.Row) (*Campaign, error) {
	c := &Campaign{}
	var typ, status, primary, goal string
	err := row.Scan(&c.ID, &c.Name, &typ, &status, &primary, &c.ChannelMix,
		&c.Targeting, &goal, &c.GoalValue, &c.BudgetUSD, &c.SpendUSD,
		&c.StartDate, &c.EndDate, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = Type(typ)
	c.Status = Status(status)
	c.PrimaryChannel = hcp.Channel(primary)
	c.GoalType = GoalType(goal)
	return c, nil
}

func collectCampaigns(rows pgx.Rows) ([]*Campaign, error) {
	var campaigns []*Campaign
	for rows.Next() {
		c := &Campaign{}
		var typ, status, primary, goal string
		if err := rows.Scan(&c.ID, &c.Name, &typ, &status, &primary, &c.ChannelMix,
			&c.Targeting, &goal, &c.GoalValue, &c.BudgetUSD, &c.SpendUSD,
			&c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Type = Type(typ)
		c.Status = Status(status)
		c.PrimaryChannel = hcp.Channel(primary)
		c.GoalType = GoalType(goal)
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func collectParticipations(rows pgx.Rows) ([]*Participation, error) {
	var parts []*Participation
	for rows.Next() {
		p := &Participation{}
		var status string
		if err := rows.Scan(&p.ID, &p.CampaignID, &p.HCPID, &status, &p.EnrolledAt,
			&p.OptOutReason, &p.OptedOutAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Status = ParticipationStatus(status)
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
