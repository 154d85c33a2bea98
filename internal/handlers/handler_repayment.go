package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type repaymentHandler struct {
	repaymentService portssvc.RepaymentSvcFacade
}

// RegisterRepaymentRoutes registers the /repayments routes.
func RegisterRepaymentRoutes(rg *gin.RouterGroup, repaymentService portssvc.RepaymentSvcFacade) {
	h := &repaymentHandler{repaymentService: repaymentService}

	repayments := rg.Group("/repayments")
	repayments.POST("", h.repay)
	repayments.GET("/:repaymentId", h.getRepayment)
}

// repay godoc
// @Summary Repay a loan
// @Description Applies a payment to a loan and credits the payer's savings account
// @Tags repayments
// @Accept  json
// @Produce  json
// @Param   repayment body dto.RepayLoanRequest true "Repayment"
// @Success 201 {object} dto.Response{data=dto.RepaymentResponse} "Repayment record created"
// @Success 200 {object} dto.Response{data=dto.RepaymentResponse} "Repayment record updated"
// @Failure 400 {object} dto.Response "Invalid amount"
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Loan, account or member not found"
// @Failure 409 {object} dto.Response "Over-repayment or concurrent update"
// @Failure 500 {object} dto.Response "Failed to repay loan"
// @Security BearerAuth
// @Router /repayments [post]
func (h *repaymentHandler) repay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Repay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("member_id", req.MemberID), slog.String("loan_id", req.LoanID))
	logger.Info("Received request to repay loan", slog.String("amount", req.Amount.String()))

	rec, created, err := h.repaymentService.Repay(c.Request.Context(), req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to repay loan")
		return
	}

	msg := "Repayment updated"
	if created {
		msg = "Repayment recorded"
	}
	c.JSON(createdOrOK(created), dto.OK(msg, dto.ToRepaymentResponse(rec)))
}

// getRepayment godoc
// @Summary Get a repayment record by ID
// @Tags repayments
// @Produce  json
// @Param   repaymentId path string true "Repayment ID"
// @Success 200 {object} dto.Response{data=dto.RepaymentResponse}
// @Failure 401 {object} dto.Response "Unauthorized"
// @Failure 404 {object} dto.Response "Repayment not found"
// @Failure 500 {object} dto.Response "Failed to retrieve repayment"
// @Security BearerAuth
// @Router /repayments/{repaymentId} [get]
func (h *repaymentHandler) getRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	repaymentID := c.Param("repaymentId")

	rec, err := h.repaymentService.GetRepayment(c.Request.Context(), repaymentID)
	if err != nil {
		respondError(c, logger.With(slog.String("repayment_id", repaymentID)), err, "Failed to retrieve repayment")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Repayment retrieved", dto.ToRepaymentResponse(rec)))
}
