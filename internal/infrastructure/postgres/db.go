package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB subconjunto común de *pgxpool.Pool, pgx.Tx y pgxmock: los repos no distinguen
// si corren sobre el pool o dentro de una transacción.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// TxBeginner DB capaz de abrir transacciones (pool o mock).
type TxBeginner interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}
