package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/handlers"
	"github.com/SscSPs/coop_savings_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// envelope is dto.Response with Data left undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// generateTestToken creates a signed JWT for operatorID.
func generateTestToken(t *testing.T, operatorID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   operatorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, router http.Handler, method, url string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	savings   *MockSavingsService
	loans     *MockLoanService
	repayment *MockRepaymentService
	history   *MockHistoryService
	token     string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.savings = new(MockSavingsService)
	s.loans = new(MockLoanService)
	s.repayment = new(MockRepaymentService)
	s.history = new(MockHistoryService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{
		Savings:   s.savings,
		Loan:      s.loans,
		Repayment: s.repayment,
		History:   s.history,
	}
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, container, nil))
	s.token = generateTestToken(s.T(), "op_1")
}

func (s *HandlersTestSuite) TearDownTest() {
	s.savings.AssertExpectations(s.T())
	s.loans.AssertExpectations(s.T())
	s.repayment.AssertExpectations(s.T())
	s.history.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestHealth() {
	w, env := doRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.True(env.Success)
}

func (s *HandlersTestSuite) TestMissingToken() {
	w, env := doRequest(s.T(), s.router, http.MethodGet, "/api/v1/loans/loan_1", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(env.Success)
	s.loans.AssertNotCalled(s.T(), "GetLoan")
}

func (s *HandlersTestSuite) TestDeposit_CreatedAndUpdated() {
	acc := &domain.SavingsAccount{AccountID: "acc_1", MemberID: "mem_1", UnitCount: 2000, Balance: decimal.NewFromInt(5000000)}
	req := dto.DepositRequest{MemberID: "mem_1", Units: 2000}

	s.savings.On("Deposit", mock.Anything, req, "op_1").Return(acc, true, nil).Once()
	w, env := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/units", req, s.token)
	s.Equal(http.StatusCreated, w.Code)
	s.True(env.Success)

	var body dto.SavingsAccountResponse
	s.Require().NoError(json.Unmarshal(env.Data, &body))
	s.Equal("acc_1", body.AccountID)
	s.True(decimal.NewFromInt(5000000).Equal(body.Balance))

	s.savings.On("Deposit", mock.Anything, req, "op_1").Return(acc, false, nil).Once()
	w, _ = doRequest(s.T(), s.router, http.MethodPost, "/api/v1/units", req, s.token)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestDeposit_RejectsNonPositiveUnits() {
	w, env := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/units", map[string]any{"memberId": "mem_1", "units": -5}, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(env.Success)
	s.savings.AssertNotCalled(s.T(), "Deposit")
}

func (s *HandlersTestSuite) TestDrawLoan_RejectsFractionalAmount() {
	body := map[string]any{"memberId": "mem_1", "accountId": "acc_1", "amount": 10.5}
	w, _ := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/loans", body, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.loans.AssertNotCalled(s.T(), "DrawLoan")
}

func (s *HandlersTestSuite) TestDrawLoan_AcceptsNumericString() {
	loan := &domain.Loan{LoanID: "loan_1", AccountID: "acc_1", MemberID: "mem_1", OutstandingBalance: decimal.NewFromInt(2000000)}
	s.loans.On("DrawLoan", mock.Anything, mock.MatchedBy(func(r dto.DrawLoanRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(2000000))
	}), "op_1").Return(loan, true, nil).Once()

	body := map[string]any{"memberId": "mem_1", "accountId": "acc_1", "amount": "2000000"}
	w, env := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/loans", body, s.token)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("Loan created", env.Message)
}

func (s *HandlersTestSuite) TestServiceErrorsMapToStatus() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "insufficient collateral", err: apperrors.ErrInsufficientCollateral, status: http.StatusBadRequest},
		{name: "below threshold", err: apperrors.ErrBelowMinimumThreshold, status: http.StatusBadRequest},
		{name: "account not found", err: apperrors.ErrAccountNotFound, status: http.StatusNotFound},
		{name: "conflict", err: apperrors.ErrStorageConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.loans.On("DrawLoan", mock.Anything, mock.Anything, "op_1").Return(nil, false, tt.err).Once()
			body := map[string]any{"memberId": "mem_1", "accountId": "acc_1", "amount": 3000000}
			w, env := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/loans", body, s.token)
			s.Equal(tt.status, w.Code)
			s.False(env.Success)
			s.Equal(tt.err.Error(), env.Message)
		})
	}
}

func (s *HandlersTestSuite) TestRepay_OverRepaymentIsConflict() {
	s.repayment.On("Repay", mock.Anything, mock.Anything, "op_1").Return(nil, false, apperrors.ErrOverRepayment).Once()
	body := map[string]any{"memberId": "mem_1", "loanId": "loan_1", "amount": 9000000}
	w, env := doRequest(s.T(), s.router, http.MethodPost, "/api/v1/repayments", body, s.token)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.ErrOverRepayment.Error(), env.Message)
}

func (s *HandlersTestSuite) TestUpdateLoan_Forbidden() {
	s.loans.On("UpdateLoan", mock.Anything, "loan_1", mock.Anything, "op_1").Return(nil, apperrors.ErrForbidden).Once()
	w, _ := doRequest(s.T(), s.router, http.MethodPut, "/api/v1/loans/loan_1", map[string]any{"amount": 100}, s.token)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestDeleteLoan_ReturnsAccount() {
	acc := &domain.SavingsAccount{AccountID: "acc_1", MemberID: "mem_1", Balance: decimal.NewFromInt(5000000)}
	s.loans.On("DeleteLoan", mock.Anything, "loan_1", "op_1").Return(acc, nil).Once()
	w, env := doRequest(s.T(), s.router, http.MethodDelete, "/api/v1/loans/loan_1", nil, s.token)
	s.Equal(http.StatusOK, w.Code)

	var body dto.SavingsAccountResponse
	s.Require().NoError(json.Unmarshal(env.Data, &body))
	s.Equal("acc_1", body.AccountID)
}

func (s *HandlersTestSuite) TestInternalErrorIsHidden() {
	s.repayment.On("GetRepayment", mock.Anything, "rep_1").Return(nil, errors.New("pool exhausted")).Once()
	w, env := doRequest(s.T(), s.router, http.MethodGet, "/api/v1/repayments/rep_1", nil, s.token)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to retrieve repayment", env.Message)
}

func (s *HandlersTestSuite) TestListHistory() {
	entries := []domain.HistoryEntry{{HistoryID: "h_1", Ledger: domain.LedgerLoan, MemberID: "mem_1"}}
	s.history.On("ListHistory", mock.Anything, mock.MatchedBy(func(p dto.ListHistoryParams) bool {
		return p.MemberID == "mem_1" && p.Ledger == "LOAN" && p.Limit == 5
	})).Return(&dto.ListHistoryResponse{Entries: entries, Count: len(entries)}, nil).Once()

	w, env := doRequest(s.T(), s.router, http.MethodGet, "/api/v1/history?memberId=mem_1&ledger=LOAN&limit=5", nil, s.token)
	s.Equal(http.StatusOK, w.Code)

	var body dto.ListHistoryResponse
	s.Require().NoError(json.Unmarshal(env.Data, &body))
	s.Equal(1, body.Count)
}

func (s *HandlersTestSuite) TestListHistory_BadLedger() {
	w, _ := doRequest(s.T(), s.router, http.MethodGet, "/api/v1/history?memberId=mem_1&ledger=PAYROLL", nil, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.history.AssertNotCalled(s.T(), "ListHistory")
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
