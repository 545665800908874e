package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBTxKey carries an open transaction through a request context so that
// repository calls within it share the transaction.
const DBTxKey contextKey = "db_tx"

// WithTx begins a transaction on the pool and returns a derived context
// carrying it. The caller owns Commit/Rollback.
func WithTx(ctx context.Context, pool *pgxpool.Pool) (context.Context, pgx.Tx, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return ctx, nil, err
	}
	return context.WithValue(ctx, DBTxKey, tx), tx, nil
}

// TxFromContext returns the transaction carried by ctx, or nil when the
// caller is not inside one. Repositories fall back to the pool in that case.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(DBTxKey).(pgx.Tx)
	return tx
}
