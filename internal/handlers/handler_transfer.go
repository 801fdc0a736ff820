package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportProfile downloads the owner's complete profile as a JSON payload.
func (h *ledgerHandler) exportProfile(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	payload, err := h.ledgerService.ExportProfile(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to export profile")
		return
	}
	filename := fmt.Sprintf("household-ledger-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// importProfile applies an uploaded export payload. The body is the raw
// payload; ?mode=replace swaps the collections instead of merging them.
func (h *ledgerHandler) importProfile(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ImportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		respondBindError(c, err)
		return
	}

	mode := params.ImportMode()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received profile import", slog.String("mode", string(mode)), slog.Int("bytes", len(payload)))

	profile, err := h.ledgerService.ImportProfile(c.Request.Context(), ownerID, payload, mode)
	if err != nil {
		respondError(c, err, "Failed to import profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToImportResponse(mode, profile))
}
