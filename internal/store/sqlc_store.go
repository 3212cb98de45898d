package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/roasbeef/modqueue/internal/db"
	"github.com/roasbeef/modqueue/internal/db/sqlc"
)

// SqlcStore implements the Storage interface using sqlc-generated queries.
type SqlcStore struct {
	db      *sql.DB
	queries *sqlc.Queries

	executor *db.TransactionExecutor[*sqlc.Queries]
}

// NewSqlcStore creates a new SqlcStore wrapping the given database
// connection. Transactions retry automatically on serialization or
// deadlock errors.
func NewSqlcStore(sqlDB *sql.DB) *SqlcStore {
	baseDB := db.NewBaseDB(sqlDB)

	executor := db.NewTransactionExecutor(
		baseDB, func(tx *sql.Tx) *sqlc.Queries {
			return baseDB.Queries.WithTx(tx)
		}, slog.Default().With("component", "store"),
	)

	return &SqlcStore{
		db:       sqlDB,
		queries:  baseDB.Queries,
		executor: executor,
	}
}

// FromDB creates a Storage from a raw database connection.
func FromDB(db *sql.DB) Storage {
	return NewSqlcStore(db)
}

// Close closes the underlying database connection.
func (s *SqlcStore) Close() error {
	return s.db.Close()
}

// WithTx executes the given function within a database transaction. The
// callback receives a Storage bound to that transaction.
func (s *SqlcStore) WithTx(ctx context.Context,
	fn func(ctx context.Context, tx Storage) error) error {

	return s.executor.ExecTx(
		ctx, db.WriteTxOption(), func(q *sqlc.Queries) error {
			return fn(ctx, &txSqlcStore{queries: q})
		},
	)
}

// SearchReviewablesByStatus runs an FTS query over reviewable payloads,
// restricted to the given status, best match first.
func (s *SqlcStore) SearchReviewablesByStatus(ctx context.Context,
	query string, status int64, limit int) ([]Reviewable, error) {

	hits, err := db.SearchReviewablesByStatus(
		ctx, s.db, query, status, limit,
	)
	if err != nil {
		return nil, err
	}

	revs := make([]Reviewable, 0, len(hits))
	for _, hit := range hits {
		rev, err := ReviewableFromSqlc(hit.Reviewable)
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}

	return revs, nil
}

// txSqlcStore is a Storage bound to an open database transaction.
type txSqlcStore struct {
	queries *sqlc.Queries
}

// WithTx on a tx-bound store just runs the callback in the same
// transaction. Nested transactions are not supported by SQLite.
func (s *txSqlcStore) WithTx(ctx context.Context,
	fn func(ctx context.Context, tx Storage) error) error {

	return fn(ctx, s)
}

// Close is a no-op on a tx-bound store; the owning store manages the
// connection.
func (s *txSqlcStore) Close() error {
	return nil
}

// Compile-time checks that both stores implement Storage, and that the
// full store also serves search.
var (
	_ Storage  = (*SqlcStore)(nil)
	_ Storage  = (*txSqlcStore)(nil)
	_ Searcher = (*SqlcStore)(nil)
)
