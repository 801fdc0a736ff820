package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to the HTTP status returned for it.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindJSONParse:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Client errors carry the
// error message and offending field; server errors only carry failureMsg.
func respondError(c *gin.Context, err error, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	if status >= http.StatusInternalServerError {
		logger.Error(failureMsg, slog.String("kind", string(kind)), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg, "kind": kind})
		return
	}

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	logger.Warn("Request rejected", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	body := gin.H{"error": msg, "kind": kind}
	if field := apperrors.FieldOf(err); field != "" {
		body["field"] = field
	}
	c.JSON(status, body)
}

// respondBindError reports a request that could not be bound.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "kind": apperrors.KindValidation})
}

// requireOwner returns the authenticated owner ID, writing 401 when absent.
func requireOwner(c *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": apperrors.KindUnauthorized})
		return "", false
	}
	return ownerID, true
}
