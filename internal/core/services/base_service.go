package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/middleware"
)

// BaseService carries the logging shared by the ledger services.
type BaseService struct{}

// ownerLogger returns the request logger tagged with the owner. Anonymous
// operations (the stateless payoff calculator) pass an empty owner.
func (s *BaseService) ownerLogger(ctx context.Context, ownerID string) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if ownerID == "" {
		return logger
	}
	return logger.With(slog.String("owner_id", ownerID))
}

// logOutcome logs a failed operation at a level matching its error kind:
// rejected input and missing data at debug, everything else at error.
func (s *BaseService) logOutcome(ctx context.Context, ownerID, op string, err error, attrs ...any) {
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindJSONParse, apperrors.KindNotFound:
		s.ownerLogger(ctx, ownerID).Debug("Operation rejected", args...)
	default:
		s.ownerLogger(ctx, ownerID).Error("Operation failed", args...)
	}
}
