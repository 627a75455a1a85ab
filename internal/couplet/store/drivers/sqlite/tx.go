package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/couplet/internal/couplet/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owning Store keeps the database open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users             { return &usersRepo{q: t.tx} }
func (t *txStore) Profiles() store.Profiles       { return &profilesRepo{q: t.tx} }
func (t *txStore) Couples() store.Couples         { return &couplesRepo{q: t.tx} }
func (t *txStore) InviteCodes() store.InviteCodes { return &inviteCodesRepo{q: t.tx} }

// ApplyMigrations is a no-op inside a transaction; run it on the Store.
func (t *txStore) ApplyMigrations() error { return nil }
