package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type historyHandler struct {
	historyService portssvc.HistoryReaderSvc
}

// RegisterHistoryRoutes registers the read-only /history route.
func RegisterHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistoryReaderSvc) {
	h := &historyHandler{historyService: historyService}
	rg.GET("/history", h.listHistory)
}

// listHistory godoc
// @Summary List ledger history for a member
// @Description Returns history entries newest first, optionally filtered to one ledger
// @Tags history
// @Produce  json
// @Param   memberId query string true "Member ID"
// @Param   ledger query string false "Ledger filter" Enums(SAVINGS, LOAN, REPAYMENT)
// @Param   limit query int false "Maximum number of entries" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.Response{data=dto.ListHistoryResponse}
// @Failure 400 {object} dto.Response "Invalid query parameters"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 500 {object} dto.Response "Failed to list history"
// @Security BearerAuth
// @Router /history [get]
func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid query parameters: "+err.Error()))
		return
	}

	page, err := h.historyService.ListHistory(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger.With(slog.String("member_id", params.MemberID)), err, "Failed to list history")
		return
	}
	c.JSON(http.StatusOK, dto.OK("History retrieved", page))
}
