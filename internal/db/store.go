package db

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// Store wraps the sqlc Queries with transaction support and additional
// business logic methods.
type Store struct {
	db      *sql.DB
	queries *sqlc.Queries

	executor *TransactionExecutor[*sqlc.Queries]
}

// NewStore creates a new Store instance wrapping the given database
// connection. Transactions are retried automatically on serialization or
// deadlock errors.
func NewStore(db *sql.DB) *Store {
	baseDB := NewBaseDB(db)

	executor := NewTransactionExecutor(
		baseDB, func(tx *sql.Tx) *sqlc.Queries {
			return baseDB.Queries.WithTx(tx)
		}, slog.Default().With("component", "db"),
	)

	return &Store{
		db:       db,
		queries:  baseDB.Queries,
		executor: executor,
	}
}

// Queries returns the underlying sqlc Queries for direct access to generated
// query methods.
func (s *Store) Queries() *sqlc.Queries {
	return s.queries
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// TxFunc is the function signature for transaction callbacks. The callback
// receives a Queries instance bound to the transaction.
type TxFunc func(ctx context.Context, q *sqlc.Queries) error

// WithTx executes the given function within a database transaction. If the
// function returns an error, the transaction is rolled back. Otherwise, it is
// committed.
func (s *Store) WithTx(ctx context.Context, fn TxFunc) error {
	return s.executor.ExecTx(
		ctx, WriteTxOption(), func(q *sqlc.Queries) error {
			return fn(ctx, q)
		},
	)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
