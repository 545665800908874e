package prescribing

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

const recordCols = `id, hcp_id, month, total_rx, new_rx, refills, product_a_rx,
	product_b_rx, competitor_rx, other_rx, market_share_pct, mom_change_pct,
	yoy_change_pct, created_at`

func (r *repoPG) BatchInsert(ctx context.Context, records []*Record) error {
	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		rec.ID = uuid.New()
		rows[i] = []interface{}{
			rec.ID, rec.HCPID, rec.Month, rec.TotalRx, rec.NewRx, rec.Refills,
			rec.ProductARx, rec.ProductBRx, rec.CompetitorRx, rec.OtherRx,
			rec.MarketSharePct, rec.MoMChangePct, rec.YoYChangePct,
		}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"prescribing_record"},
		[]string{"id", "hcp_id", "month", "total_rx", "new_rx", "refills", "product_a_rx",
			"product_b_rx", "competitor_rx", "other_rx", "market_share_pct",
			"mom_change_pct", "yoy_change_pct"},
		pgx.CopyFromRows(rows))
	return err
}

func (r *repoPG) SelectAll(ctx context.Context) ([]*Record, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM prescribing_record ORDER BY hcp_id, month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *repoPG) ListByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Record, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM prescribing_record WHERE hcp_id = $1 ORDER BY month`, hcpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE prescribing_record`)
	return err
}

func collectRecords(rows pgx.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.HCPID, &rec.Month, &rec.TotalRx, &rec.NewRx,
			&rec.Refills, &rec.ProductARx, &rec.ProductBRx, &rec.CompetitorRx,
			&rec.OtherRx, &rec.MarketSharePct, &rec.MoMChangePct, &rec.YoYChangePct,
			&rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
