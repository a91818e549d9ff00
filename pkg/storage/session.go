package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Session is the unit-of-work handle passed to WithSession callbacks.
// *sql.Tx satisfies it.
type Session interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// WithSession runs fn inside one transaction. The transaction is committed
// when fn succeeds and rolled back when fn fails or panics; in every case it
// is released exactly once. An error returned by fn is returned unchanged.
func (s *SQLStore) WithSession(ctx context.Context, fn func(ctx context.Context, sess Session) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		// fn panicked.
		s.rollback(tx)
	}()

	if err := fn(ctx, tx); err != nil {
		done = true
		s.rollback(tx)
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

func (s *SQLStore) rollback(tx *sql.Tx) {
	// A cancelled context already rolled the transaction back.
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Warn().Err(err).Msg("failed to roll back session")
	}
}
