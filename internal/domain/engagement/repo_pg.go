package engagement

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

const stimulusCols = `id, hcp_id, channel, subtype, campaign_id, rep_id, category,
	message_variant, call_to_action, delivery_status, predicted_engagement_delta,
	predicted_conversion_delta, confidence_low, confidence_high, impact_status,
	occurred_at, created_at`

func (r *repoPG) BatchInsertStimuli(ctx context.Context, events []*StimulusEvent) error {
	rows := make([][]interface{}, len(events))
	for i, e := range events {
		e.ID = uuid.New()
		rows[i] = []interface{}{
			e.ID, e.HCPID, string(e.Channel), e.Subtype, e.CampaignID, e.RepID,
			string(e.Category), e.MessageVariant, e.CallToAction, string(e.DeliveryStatus),
			e.PredictedEngagementDelta, e.PredictedConversionDelta,
			e.ConfidenceLow, e.ConfidenceHigh, e.ImpactStatus, e.OccurredAt,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"stimulus_event"},
		[]string{"id", "hcp_id", "channel", "subtype", "campaign_id", "rep_id", "category",
			"message_variant", "call_to_action", "delivery_status", "predicted_engagement_delta",
			"predicted_conversion_delta", "confidence_low", "confidence_high", "impact_status",
			"occurred_at"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) SelectAllStimuli(ctx context.Context) ([]*StimulusEvent, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+stimulusCols+` FROM stimulus_event ORDER BY occurred_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStimuli(rows)
}

func (r *repoPG) ListStimuliByHCP(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*StimulusEvent, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM stimulus_event WHERE hcp_id = $1`, hcpID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+stimulusCols+` FROM stimulus_event WHERE hcp_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`,
		hcpID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := collectStimuli(rows)
	return events, total, err
}

func (r *repoPG) MarkImpactObserved(ctx context.Context, stimulusIDs []uuid.UUID) error {
	if len(stimulusIDs) == 0 {
		return nil
	}
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE stimulus_event SET impact_status = 'observed' WHERE id = ANY($1)`, stimulusIDs)
	return err
}

const outcomeCols = `id, hcp_id, stimulus_id, outcome_type, value_usd, quality_score,
	attribution, attribution_weight, touch_count, occurred_at, created_at`

func (r *repoPG) BatchInsertOutcomes(ctx context.Context, events []*OutcomeEvent) error {
	rows := make([][]interface{}, len(events))
	for i, e := range events {
		e.ID = uuid.New()
		rows[i] = []interface{}{
			e.ID, e.HCPID, e.StimulusID, e.OutcomeType, e.ValueUSD, e.QualityScore,
			string(e.Attribution), e.AttributionWeight, e.TouchCount, e.OccurredAt,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"outcome_event"},
		[]string{"id", "hcp_id", "stimulus_id", "outcome_type", "value_usd", "quality_score",
			"attribution", "attribution_weight", "touch_count", "occurred_at"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) SelectAllOutcomes(ctx context.Context) ([]*OutcomeEvent, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+outcomeCols+` FROM outcome_event ORDER BY occurred_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOutcomes(rows)
}

func (r *repoPG) ListOutcomesByHCP(ctx context.Context, hcpID uuid.UUID, limit, offset int) ([]*OutcomeEvent, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM outcome_event WHERE hcp_id = $1`, hcpID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+outcomeCols+` FROM outcome_event WHERE hcp_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`,
		hcpID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := collectOutcomes(rows)
	return events, total, err
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE outcome_event, stimulus_event CASCADE`)
	return err
}

func collectStimuli(rows pgx.Rows) ([]*StimulusEvent, error) {
	var events []*StimulusEvent
	for rows.Next() {
		e := &StimulusEvent{}
		var channel, category, status string
		if err := rows.Scan(&e.ID, &e.HCPID, &channel, &e.Subtype, &e.CampaignID, &e.RepID,
			&category, &e.MessageVariant, &e.CallToAction, &status,
			&e.PredictedEngagementDelta, &e.PredictedConversionDelta,
			&e.ConfidenceLow, &e.ConfidenceHigh, &e.ImpactStatus,
			&e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Channel = hcp.Channel(channel)
		e.Category = ContentCategory(category)
		e.DeliveryStatus = DeliveryStatus(status)
		events = append(events, e)
	}
	return events, rows.Err()
}

func collectOutcomes(rows pgx.Rows) ([]*OutcomeEvent, error) {
	var events []*OutcomeEvent
	for rows.Next() {
		e := &OutcomeEvent{}
		var attribution string
		if err := rows.Scan(&e.ID, &e.HCPID, &e.StimulusID, &e.OutcomeType,
			&e.ValueUSD, &e.QualityScore, &attribution, &e.AttributionWeight,
			&e.TouchCount, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Attribution = AttributionType(attribution)
		events = append(events, e)
	}
	return events, rows.Err()
}
