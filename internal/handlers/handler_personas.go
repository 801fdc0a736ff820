package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/household_ledger/internal/core/collections"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/SscSPs/household_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (h *ledgerHandler) addPersona(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req domain.Persona
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.AddPersona(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to add persona")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

// getPersonaImpact counts the rows that reference a persona, so a client can
// warn before deleting it.
func (h *ledgerHandler) getPersonaImpact(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	impact, err := h.ledgerService.GetPersonaImpact(c.Request.Context(), ownerID, c.Param("name"))
	if err != nil {
		respondError(c, err, "Failed to compute persona impact")
		return
	}
	c.JSON(http.StatusOK, impact)
}

func (h *ledgerHandler) renamePersona(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.RenamePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	name := c.Param("name")
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to rename persona", slog.String("persona", name), slog.String("new_name", req.NewName))

	ledger, err := h.ledgerService.RenamePersona(c.Request.Context(), ownerID, name, req)
	if err != nil {
		respondError(c, err, "Failed to rename persona")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// deletePersona removes a persona. With policy=reassign its rows move to
// target; with policy=cascade they are removed with it.
func (h *ledgerHandler) deletePersona(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.DeletePersonaParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	ledger, err := h.ledgerService.DeletePersona(c.Request.Context(), ownerID, c.Param("name"),
		collections.DeletePolicy(params.Policy), params.Target)
	if err != nil {
		respondError(c, err, "Failed to delete persona")
		return
	}
	c.JSON(http.StatusOK, ledger)
}
