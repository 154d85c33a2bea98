package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the failure envelope for err. Server-side failures are
// logged at error level and their details are hidden from the caller.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(fallbackMsg))
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.Fail(err.Error()))
}

// operatorOrAbort returns the operator ID set by AuthMiddleware, or writes 401.
func operatorOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return "", false
	}
	return operatorID, true
}

func createdOrOK(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
