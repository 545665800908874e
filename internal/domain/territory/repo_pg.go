package territory

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

func (r *repoPG) BatchInsertReps(ctx context.Context, reps []*Rep) error {
	rows := make([][]interface{}, len(reps))
	for i, rep := range reps {
		rep.ID = uuid.New()
		rows[i] = []interface{}{rep.ID, rep.RepCode, rep.FirstName, rep.LastName, rep.Region, rep.Territory}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"sales_rep"},
		[]string{"id", "rep_code", "first_name", "last_name", "region", "territory"},
		pgx.CopyFromRows(rows))
	return err
}

const repCols = `id, rep_code, first_name, last_name, region, territory, created_at`

func (r *repoPG) SelectAllReps(ctx context.Context) ([]*Rep, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+repCols+` FROM sales_rep ORDER BY rep_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReps(rows)
}

func (r *repoPG) ListReps(ctx context.Context, limit, offset int) ([]*Rep, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM sales_rep`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+repCols+` FROM sales_rep ORDER BY rep_code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	reps, err := collectReps(rows)
	return reps, total, err
}

func (r *repoPG) BatchInsertAssignments(ctx context.Context, assignments []*Assignment) error {
	rows := make([][]interface{}, len(assignments))
	for i, a := range assignments {
		a.ID = uuid.New()
		rows[i] = []interface{}{a.ID, a.HCPID, a.RepID, string(a.Type), a.EffectiveFrom, a.EffectiveTo, a.Active}
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{"territory_assignment"},
		[]string{"id", "hcp_id", "rep_id", "assignment_type", "effective_from", "effective_to", "active"},
		pgx.CopyFromRows(rows))
	return err
}

const assignmentCols = `id, hcp_id, rep_id, assignment_type, effective_from, effective_to, active, created_at`

func (r *repoPG) SelectAllAssignments(ctx context.Context) ([]*Assignment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+assignmentCols+` FROM territory_assignment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *repoPG) ListAssignments(ctx context.Context, limit, offset int) ([]*Assignment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM territory_assignment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assignmentCols+` FROM territory_assignment ORDER BY hcp_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	assignments, err := collectAssignments(rows)
	return assignments, total, err
}

func (r *repoPG) ListAssignmentsByHCP(ctx context.Context, hcpID uuid.UUID) ([]*Assignment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assignmentCols+` FROM territory_assignment WHERE hcp_id = $1`, hcpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *repoPG) Truncate(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, `TRUNCATE territory_assignment, sales_rep`)
	return err
}

func collectReps(rows pgx.Rows) ([]*Rep, error) {
	var reps []*Rep
	for rows.Next() {
		rep := &Rep{}
		if err := rows.Scan(&rep.ID, &rep.RepCode, &rep.FirstName, &rep.LastName,
			&rep.Region, &rep.Territory, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reps = append(reps, rep)
	}
	return reps, rows.Err()
}

func collectAssignments(rows pgx.Rows) ([]*Assignment, error) {
	var assignments []*Assignment
	for rows.Next() {
		a := &Assignment{}
		var typ string
		if err := rows.Scan(&a.ID, &a.HCPID, &a.RepID, &typ, &a.EffectiveFrom,
			&a.EffectiveTo, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = AssignmentType(typ)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
