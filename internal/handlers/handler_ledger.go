package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/household_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests that read and mutate an owner's ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getLedger)
		ledger.PUT("", h.replaceLedger)
		ledger.GET("/records/:collection", h.listRecords)
		ledger.POST("/records/:collection", h.appendRecord)
		ledger.POST("/goals", h.appendGoal)
		ledger.POST("/credit-cards", h.appendCreditCard)
		ledger.POST("/asset-holdings", h.appendAssetHolding)
		ledger.POST("/notes", h.appendNote)
		ledger.PUT("/preferences", h.updatePreferences)
		ledger.POST("/recurring/reconcile", h.reconcileRecurring)
		ledger.GET("/audit", h.listAuditEntries)
		ledger.GET("/export", h.exportProfile)
		ledger.POST("/import", h.importProfile)

		personas := ledger.Group("/personas")
		{
			personas.POST("", h.addPersona)
			personas.GET("/:name/impact", h.getPersonaImpact)
			personas.PUT("/:name", h.renamePersona)
			personas.DELETE("/:name", h.deletePersona)
		}
	}
}

// getLedger returns the owner's ledger, or the default empty one.
func (h *ledgerHandler) getLedger(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

func (h *ledgerHandler) replaceLedger(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.Ledger
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.ReplaceLedger(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to replace ledger")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger replaced")
	c.JSON(http.StatusOK, ledger)
}

// listRecords returns one record collection, filtered by the search text and
// ordered by the requested sort key.
func (h *ledgerHandler) listRecords(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	collection, err := domain.ParseCollection(c.Param("collection"))
	if err != nil {
		respondError(c, err, "Failed to list records")
		return
	}
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	records, err := h.ledgerService.ListRecords(c.Request.Context(), ownerID, collection, params.ToCriteria())
	if err != nil {
		respondError(c, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ledgerHandler) appendRecord(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	collection, err := domain.ParseCollection(c.Param("collection"))
	if err != nil {
		respondError(c, err, "Failed to append record")
		return
	}
	var req domain.Record
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("collection", string(collection)))
	logger.Info("Received request to append record")

	ledger, err := h.ledgerService.AppendRecord(c.Request.Context(), ownerID, collection, req)
	if err != nil {
		respondError(c, err, "Failed to append record")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) appendGoal(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.AppendGoal(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to append goal")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) appendCreditCard(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.CreditCard
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.AppendCreditCard(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to append credit card")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) appendAssetHolding(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.AssetHolding
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.AppendAssetHolding(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to append asset holding")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) appendNote(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.Note
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.AppendNote(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to append note")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

// updatePreferences stores display preferences. No audit entry is written.
func (h *ledgerHandler) updatePreferences(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.UIPreferences
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.ledgerService.UpdatePreferences(c.Request.Context(), ownerID, req); err != nil {
		respondError(c, err, "Failed to update preferences")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) reconcileRecurring(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	result, err := h.ledgerService.ReconcileRecurring(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to reconcile recurring rows")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Recurring rows reconciled",
		slog.Int("added", result.AddedCount), slog.Int("removed", result.RemovedCount))
	c.JSON(http.StatusOK, dto.ToReconcileResponse(*result))
}

// listAuditEntries returns a page of the audit timeline, newest first.
// Pass the returned nextToken to fetch the following page.
func (h *ledgerHandler) listAuditEntries(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.ledgerService.ListAuditEntries(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, res)
}
