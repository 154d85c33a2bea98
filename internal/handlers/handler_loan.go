package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests for the loan ledger.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// RegisterLoanRoutes registers the /loans routes.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.drawLoan)
		loans.GET("/:loanId", h.getLoan)
		loans.PUT("/:loanId", h.updateLoan)
		loans.DELETE("/:loanId", h.deleteLoan)
	}
}

// drawLoan godoc
// @Summary Draw a loan against savings
// @Description Opens the loan for the (account, member) pair or tops it up. The amount may not exceed the account balance.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.DrawLoanRequest true "Loan draw"
// @Success 201 {object} dto.Response{data=dto.LoanResponse} "Loan opened"
// @Success 200 {object} dto.Response{data=dto.LoanResponse} "Loan topped up"
// @Failure 400 {object} dto.Response "Invalid amount, insufficient collateral or balance below threshold"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Account or member not found"
// @Failure 409 {object} dto.Response "Concurrent update"
// @Failure 500 {object} dto.Response "Failed to draw loan"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) drawLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DrawLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DrawLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("member_id", req.MemberID), slog.String("account_id", req.AccountID))
	logger.Info("Received request to draw loan", slog.String("amount", req.Amount.String()))

	loan, created, err := h.loanService.DrawLoan(c.Request.Context(), req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to draw loan")
		return
	}

	msg := "Loan updated"
	if created {
		msg = "Loan created"
	}
	logger.Info(msg, slog.String("loan_id", loan.LoanID))
	c.JSON(createdOrOK(created), dto.OK(msg, dto.ToLoanResponse(loan)))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce  json
// @Param   loanId path string true "Loan ID"
// @Success 200 {object} dto.Response{data=dto.LoanResponse}
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Loan not found"
// @Failure 500 {object} dto.Response "Failed to retrieve loan"
// @Security BearerAuth
// @Router /loans/{loanId} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanId")

	loan, err := h.loanService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Loan retrieved", dto.ToLoanResponse(loan)))
}

// updateLoan godoc
// @Summary Reprice a loan
// @Description Administrative override that sets a new principal without a collateral check
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanId path string true "Loan ID"
// @Param   loan body dto.UpdateLoanRequest true "New principal"
// @Success 200 {object} dto.Response{data=dto.LoanResponse}
// @Failure 400 {object} dto.Response "Invalid amount"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 403 {object} dto.Response "Operator is not an admin"
// @Failure 404 {object} dto.Response "Loan not found"
// @Failure 409 {object} dto.Response "Concurrent update"
// @Failure 500 {object} dto.Response "Failed to update loan"
// @Security BearerAuth
// @Router /loans/{loanId} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanId")
	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("loan_id", loanID))
	logger.Info("Received request to update loan", slog.String("amount", req.Amount.String()))

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), loanID, req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update loan")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Loan updated", dto.ToLoanResponse(loan)))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes the loan and refunds its outstanding balance to the backing savings account
// @Tags loans
// @Produce  json
// @Param   loanId path string true "Loan ID"
// @Success 200 {object} dto.Response{data=dto.SavingsAccountResponse} "Backing account after refund"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 403 {object} dto.Response "Operator is not an admin"
// @Failure 404 {object} dto.Response "Loan not found"
// @Failure 409 {object} dto.Response "Concurrent update"
// @Failure 500 {object} dto.Response "Failed to delete loan"
// @Security BearerAuth
// @Router /loans/{loanId} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanId")

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("loan_id", loanID))
	logger.Info("Received request to delete loan")

	acc, err := h.loanService.DeleteLoan(c.Request.Context(), loanID, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete loan")
		return
	}
	logger.Info("Loan deleted", slog.String("account_id", acc.AccountID))
	c.JSON(http.StatusOK, dto.OK("Loan deleted", dto.ToSavingsAccountResponse(acc)))
}
