package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/core/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/handlers"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
	"github.com/SscSPs/coop_savings_ledger/internal/platform/config"
	"github.com/SscSPs/coop_savings_ledger/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRouter(t *testing.T, members ...domain.Member) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:         testJWTSecret,
		IsProduction:      true,
		UnitPrice:         decimal.NewFromInt(2500),
		MinBalanceForLoan: decimal.NewFromInt(2000),
		RepaymentPolicy:   domain.RepaymentAccumulate,
		HistoryMode:       portssvc.HistoryTransactional,
	}
	repos := memory.NewRepositoryProvider(memory.NewStore(members...))
	container := services.NewServiceContainer(cfg, repos, nil)

	limiter, err := middleware.NewLimiter("1000-M", nil)
	require.NoError(t, err)

	r := gin.New()
	require.NoError(t, handlers.RegisterRoutes(r, cfg, container, limiter))
	return r
}

func decodeData[T any](t *testing.T, env envelope) T {
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestLedgerFlowOverHTTP(t *testing.T) {
	router := newMemoryRouter(t)
	token := generateTestToken(t, "op_1")

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/units", dto.DepositRequest{MemberID: "mem_1", Units: 2000}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	acc := decodeData[dto.SavingsAccountResponse](t, env)
	assert.True(t, decimal.NewFromInt(5000000).Equal(acc.Balance))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

	// Draw beyond the balance is rejected and leaves no loan behind.
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/loans",
		map[string]any{"memberId": "mem_1", "accountId": acc.AccountID, "amount": 6000000}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/loans",
		map[string]any{"memberId": "mem_1", "accountId": acc.AccountID, "amount": 2000000}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loan := decodeData[dto.LoanResponse](t, env)
	assert.True(t, decimal.NewFromInt(2000000).Equal(loan.OutstandingBalance))

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/repayments",
		map[string]any{"memberId": "mem_1", "loanId": loan.LoanID, "amount": 500000}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeData[dto.RepaymentResponse](t, env)
	assert.True(t, decimal.NewFromInt(1500000).Equal(rec.BalanceAfter))

	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/repayments",
		map[string]any{"memberId": "mem_1", "loanId": loan.LoanID, "amount": 1500001}, token)
	require.Equal(t, http.StatusConflict, w.Code)

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/repayments",
		map[string]any{"memberId": "mem_1", "loanId": loan.LoanID, "amount": 1500000}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec = decodeData[dto.RepaymentResponse](t, env)
	assert.True(t, rec.AmountApplied.IsZero())
	assert.True(t, decimal.NewFromInt(2000000).Equal(rec.TotalRepaid))

	w, env = doRequest(t, router, http.MethodGet, "/api/v1/loans/"+loan.LoanID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	loan = decodeData[dto.LoanResponse](t, env)
	assert.Equal(t, domain.LoanPaid, loan.Status)

	w, env = doRequest(t, router, http.MethodGet, "/api/v1/units/mem_1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	acc = decodeData[dto.SavingsAccountResponse](t, env)
	assert.True(t, decimal.NewFromInt(5000000).Equal(acc.Balance))

	w, env = doRequest(t, router, http.MethodGet, "/api/v1/history?memberId=mem_1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	history := decodeData[dto.ListHistoryResponse](t, env)
	// deposit, draw and two repayments; rejected calls leave no trace
	assert.Equal(t, 4, history.Count)
}

func TestLedgerFlowOverHTTP_IdentityChecks(t *testing.T) {
	router := newMemoryRouter(t,
		domain.Member{MemberID: "admin_1", Role: domain.RoleAdmin, Status: domain.MemberActive},
		domain.Member{MemberID: "mem_1", Role: domain.RoleMember, Status: domain.MemberActive},
	)
	memberToken := generateTestToken(t, "mem_1")
	adminToken := generateTestToken(t, "admin_1")

	w, _ := doRequest(t, router, http.MethodPost, "/api/v1/units", dto.DepositRequest{MemberID: "ghost", Units: 10}, memberToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/units", dto.DepositRequest{MemberID: "mem_1", Units: 2000}, memberToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	acc := decodeData[dto.SavingsAccountResponse](t, env)

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/loans",
		map[string]any{"memberId": "mem_1", "accountId": acc.AccountID, "amount": 1000000}, memberToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loan := decodeData[dto.LoanResponse](t, env)

	w, _ = doRequest(t, router, http.MethodPut, "/api/v1/loans/"+loan.LoanID, map[string]any{"amount": 1}, memberToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, env = doRequest(t, router, http.MethodDelete, "/api/v1/loans/"+loan.LoanID, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	acc = decodeData[dto.SavingsAccountResponse](t, env)
	assert.True(t, decimal.NewFromInt(5000000).Equal(acc.Balance))

	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/loans/"+loan.LoanID, nil, adminToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}
