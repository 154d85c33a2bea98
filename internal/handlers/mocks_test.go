package handlers_test

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock SavingsService ---
type MockSavingsService struct {
	mock.Mock
}

func (m *MockSavingsService) Deposit(ctx context.Context, req dto.DepositRequest, operatorID string) (*domain.SavingsAccount, bool, error) {
	args := m.Called(ctx, req, operatorID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Bool(1), args.Error(2)
}

func (m *MockSavingsService) GetAccount(ctx context.Context, memberID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

var _ portssvc.SavingsSvcFacade = (*MockSavingsService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DrawLoan(ctx context.Context, req dto.DrawLoanRequest, operatorID string) (*domain.Loan, bool, error) {
	args := m.Called(ctx, req, operatorID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Loan), args.Bool(1), args.Error(2)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, operatorID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, loanID string, operatorID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, loanID, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock RepaymentService ---
type MockRepaymentService struct {
	mock.Mock
}

func (m *MockRepaymentService) GetRepayment(ctx context.Context, repaymentID string) (*domain.RepaymentRecord, error) {
	args := m.Called(ctx, repaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepaymentRecord), args.Error(1)
}

func (m *MockRepaymentService) Repay(ctx context.Context, req dto.RepayLoanRequest, operatorID string) (*domain.RepaymentRecord, bool, error) {
	args := m.Called(ctx, req, operatorID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.RepaymentRecord), args.Bool(1), args.Error(2)
}

var _ portssvc.RepaymentSvcFacade = (*MockRepaymentService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Stage(ctx context.Context, repos portsrepo.TxRepos, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, repos, entry)
	return args.Error(0)
}

func (m *MockHistoryService) Commit(ctx context.Context, entry domain.HistoryEntry) {
	m.Called(ctx, entry)
}

func (m *MockHistoryService) ListHistory(ctx context.Context, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListHistoryResponse), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)
