package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the pool shared by the ledger repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// withTx runs fn inside a transaction owned by ownerID. fn's error is
// returned as is; the transaction is committed only when fn returns nil.
func (r *BaseRepository) withTx(ctx context.Context, ownerID string, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(apperrors.KindInternal, "failed to begin transaction for owner "+ownerID, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Warn("Rollback failed",
				slog.String("owner_id", ownerID), slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(apperrors.KindInternal, "failed to commit transaction for owner "+ownerID, err)
	}
	return nil
}
