package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsHandler handles HTTP requests for the savings ledger.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

func newSavingsHandler(ss portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: ss}
}

// RegisterSavingsRoutes registers the /units routes.
func RegisterSavingsRoutes(rg *gin.RouterGroup, savingsService portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(savingsService)

	units := rg.Group("/units")
	{
		units.POST("", h.deposit)
		units.GET("/:memberId", h.getAccount)
	}
}

// deposit godoc
// @Summary Deposit savings units
// @Description Adds units to a member's savings account, opening the account on the first deposit
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Member and number of units"
// @Success 201 {object} dto.Response{data=dto.SavingsAccountResponse} "Account opened"
// @Success 200 {object} dto.Response{data=dto.SavingsAccountResponse} "Account updated"
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Member not found"
// @Failure 409 {object} dto.Response "Concurrent update"
// @Failure 500 {object} dto.Response "Failed to deposit"
// @Security BearerAuth
// @Router /units [post]
func (h *savingsHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("member_id", req.MemberID))
	logger.Info("Received request to deposit units", slog.Int64("units", req.Units))

	acc, created, err := h.savingsService.Deposit(c.Request.Context(), req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to deposit units")
		return
	}

	msg := "Units added"
	if created {
		msg = "Savings account opened"
	}
	logger.Info(msg, slog.String("account_id", acc.AccountID))
	c.JSON(createdOrOK(created), dto.OK(msg, dto.ToSavingsAccountResponse(acc)))
}

// getAccount godoc
// @Summary Get a member's savings account
// @Tags savings
// @Produce  json
// @Param   memberId path string true "Member ID"
// @Success 200 {object} dto.Response{data=dto.SavingsAccountResponse}
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Account not found"
// @Failure 500 {object} dto.Response "Failed to retrieve account"
// @Security BearerAuth
// @Router /units/{memberId} [get]
func (h *savingsHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberId")

	acc, err := h.savingsService.GetAccount(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, logger.With(slog.String("member_id", memberID)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Savings account retrieved", dto.ToSavingsAccountResponse(acc)))
}
