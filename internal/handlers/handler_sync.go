package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles profile snapshot sync with Google Sheets.
type syncHandler struct {
	syncService portssvc.SheetsSyncSvc
}

func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SheetsSyncSvc) {
	h := &syncHandler{syncService: syncService}

	sheets := rg.Group("/sync/sheets")
	{
		sheets.POST("/export", h.exportToSheets)
		sheets.POST("/import", h.importFromSheets)
	}
}

func (h *syncHandler) exportToSheets(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	res, err := h.syncService.ExportToSheets(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to export profile to sheets")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Profile exported to sheets",
		slog.String("dataset_key", res.DatasetKey), slog.Int("bytes", res.Bytes))
	c.JSON(http.StatusCreated, res)
}

// importFromSheets applies the newest snapshot exported at or before
// ?asOf (RFC 3339, default now).
func (h *syncHandler) importFromSheets(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.SheetsImportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	mode := params.ImportMode()
	profile, err := h.syncService.ImportFromSheets(c.Request.Context(), ownerID, params.AsOfTime(time.Now()), mode)
	if err != nil {
		respondError(c, err, "Failed to import profile from sheets")
		return
	}
	c.JSON(http.StatusOK, dto.ToImportResponse(mode, profile))
}
