package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/household_ledger/internal/core/ports/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// insightsHandler handles HTTP requests for calculations over the ledger.
type insightsHandler struct {
	insightsService portssvc.InsightsSvcFacade
	now             func() time.Time
}

func newInsightsHandler(is portssvc.InsightsSvcFacade) *insightsHandler {
	return &insightsHandler{
		insightsService: is,
		now:             time.Now,
	}
}

// registerInsightsRoutes registers the read-only insight routes and the
// stateless payoff calculator.
func registerInsightsRoutes(rg *gin.RouterGroup, insightsService portssvc.InsightsSvcFacade) {
	h := newInsightsHandler(insightsService)

	insights := rg.Group("/insights")
	{
		insights.GET("/dashboard", h.getDashboard)
		insights.GET("/monthly", h.getMonthOverMonth)
		insights.GET("/datapoints", h.getDatapoints)
		insights.GET("/summaries", h.getSummaries)
		insights.GET("/records", h.getUnifiedRecords)
		insights.GET("/risks", h.getRiskFindings)
		insights.GET("/projections", h.getProjections)
		insights.GET("/planning", h.getPlanningCockpit)
		insights.POST("/card-recommendations", h.recommendCardPayments)
	}

	rg.POST("/payoff/compare", h.comparePayoff)
}

// asOf binds the optional ?asOf=YYYY-MM-DD reference date.
func (h *insightsHandler) asOf(c *gin.Context) (time.Time, bool) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return time.Time{}, false
	}
	return params.AsOfTime(h.now()), true
}

func (h *insightsHandler) getDashboard(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	res, err := h.insightsService.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to calculate dashboard")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getMonthOverMonth compares the month of asOf with the month before it.
func (h *insightsHandler) getMonthOverMonth(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	res, err := h.insightsService.MonthOverMonth(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondError(c, err, "Failed to calculate monthly breakdown")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getDatapoints(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	res, err := h.insightsService.Datapoints(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondError(c, err, "Failed to calculate datapoints")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getSummaries(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	res, err := h.insightsService.Summaries(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondError(c, err, "Failed to calculate summaries")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getUnifiedRecords(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	res, err := h.insightsService.UnifiedRecords(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getRiskFindings(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	res, err := h.insightsService.RiskFindings(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondError(c, err, "Failed to analyze risks")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getProjections(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	res, err := h.insightsService.Projections(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to project net worth")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) getPlanningCockpit(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	res, err := h.insightsService.PlanningCockpit(c.Request.Context(), ownerID, asOf)
	if err != nil {
		respondError(c, err, "Failed to build planning insights")
		return
	}
	c.JSON(http.StatusOK, res)
}

// recommendCardPayments plans card payments. An empty body plans the
// ledger's own cards.
func (h *insightsHandler) recommendCardPayments(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CardRecommendationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	res, err := h.insightsService.CardRecommendations(c.Request.Context(), ownerID, req.CreditCards)
	if err != nil {
		respondError(c, err, "Failed to recommend card payments")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *insightsHandler) comparePayoff(c *gin.Context) {
	var req dto.ComparePayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.insightsService.ComparePayoff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to compare payoff")
		return
	}
	c.JSON(http.StatusOK, res)
}
