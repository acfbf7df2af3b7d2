package main

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	custodyservice "custody/internal/custody/service"
	custodystore "custody/internal/custody/store"
	dErrors "custody/pkg/domain-errors"
)

type custodyPostgresTx struct {
	db      *sqlx.DB
	timeout time.Duration
}

func newCustodyPostgresTx(db *sqlx.DB, timeout time.Duration) *custodyPostgresTx {
	return &custodyPostgresTx{db: db, timeout: timeout}
}

// RunInTx runs fn on a store bound to one transaction. The transaction
// commits only when fn succeeds.
func (t *custodyPostgresTx) RunInTx(ctx context.Context, fn func(store custodyservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = custodyservice.DefaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(custodystore.NewPostgresFromTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
