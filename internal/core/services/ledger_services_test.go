package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/core/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/platform/config"
	"github.com/SscSPs/coop_savings_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const operator = "op_1"

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testConfig() *config.Config {
	return &config.Config{
		UnitPrice:         d(2500),
		MinBalanceForLoan: d(2000),
		RepaymentPolicy:   domain.RepaymentAccumulate,
		HistoryMode:       portssvc.HistoryBestEffort,
	}
}

type LedgerServicesTestSuite struct {
	suite.Suite
	ctx       context.Context
	cfg       *config.Config
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	publisher *MockHistoryPublisher
	svc       *portssvc.ServiceContainer
}

func (s *LedgerServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = testConfig()
	s.store = memory.NewStore()
	s.publisher = new(MockHistoryPublisher)
	s.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.rebuild()
}

func (s *LedgerServicesTestSuite) rebuild() {
	s.repos = memory.NewRepositoryProvider(s.store)
	s.svc = services.NewServiceContainer(s.cfg, s.repos, s.publisher)
}

func (s *LedgerServicesTestSuite) deposit(memberID string, units int64) *domain.SavingsAccount {
	acc, _, err := s.svc.Savings.Deposit(s.ctx, dto.DepositRequest{MemberID: memberID, Units: units}, operator)
	s.Require().NoError(err)
	return acc
}

func (s *LedgerServicesTestSuite) draw(acc *domain.SavingsAccount, amount int64) *domain.Loan {
	loan, _, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: acc.MemberID, AccountID: acc.AccountID, Amount: d(amount)}, operator)
	s.Require().NoError(err)
	return loan
}

func (s *LedgerServicesTestSuite) repay(memberID, loanID string, amount int64) (*domain.RepaymentRecord, bool, error) {
	return s.svc.Repayment.Repay(s.ctx, dto.RepayLoanRequest{MemberID: memberID, LoanID: loanID, Amount: d(amount)}, operator)
}

func (s *LedgerServicesTestSuite) history(memberID string) []domain.HistoryEntry {
	page, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: memberID, Limit: 200})
	s.Require().NoError(err)
	return page.Entries
}

func (s *LedgerServicesTestSuite) account(memberID string) *domain.SavingsAccount {
	acc, err := s.svc.Savings.GetAccount(s.ctx, memberID)
	s.Require().NoError(err)
	return acc
}

func (s *LedgerServicesTestSuite) assertDecimal(want int64, got decimal.Decimal, msgAndArgs ...any) {
	s.True(d(want).Equal(got), append([]any{"want %d, got %s", want, got}, msgAndArgs...)...)
}

// --- Savings ---

func (s *LedgerServicesTestSuite) TestDeposit_CreatesThenUpdates() {
	acc, created, err := s.svc.Savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 4}, operator)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(int64(4), acc.UnitCount)
	s.assertDecimal(10000, acc.Balance)

	acc, created, err = s.svc.Savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 2}, operator)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(int64(6), acc.UnitCount)
	s.assertDecimal(15000, acc.Balance)
	s.assertDecimal(15000, acc.TotalContributed)

	entries := s.history("mem_1")
	s.Require().Len(entries, 2)
	s.Equal(domain.ActionUpdated, entries[0].Action)
	s.Equal(int64(2), entries[0].Units)
	s.assertDecimal(5000, entries[0].Amount)
	s.assertDecimal(10000, entries[0].AccountBalanceBefore)
	s.assertDecimal(15000, entries[0].AccountBalanceAfter)
	s.Equal(domain.ActionCreated, entries[1].Action)
	s.Equal(domain.LedgerSavings, entries[1].Ledger)

	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, "history.savings.created", mock.Anything)
	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, "history.savings.updated", mock.Anything)
}

func (s *LedgerServicesTestSuite) TestDeposit_RejectsNonPositiveUnits() {
	for _, units := range []int64{0, -2} {
		_, _, err := s.svc.Savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: units}, operator)
		s.ErrorIs(err, apperrors.ErrInvalidAmount)
	}
	_, err := s.svc.Savings.GetAccount(s.ctx, "mem_1")
	s.ErrorIs(err, apperrors.ErrAccountNotFound)
	s.Empty(s.history("mem_1"))
}

func (s *LedgerServicesTestSuite) TestDeposit_RefreshesLoanCollateral() {
	acc := s.deposit("mem_1", 4) // 10,000
	loan := s.draw(acc, 4000)
	s.assertDecimal(6000, loan.RemainingCollateral)

	s.deposit("mem_1", 2) // 6,000 + 5,000

	refreshed, err := s.svc.Loan.GetLoan(s.ctx, loan.LoanID)
	s.Require().NoError(err)
	s.assertDecimal(11000, refreshed.RemainingCollateral)
	s.assertDecimal(4000, refreshed.OutstandingBalance)
}

// --- Loans ---

func (s *LedgerServicesTestSuite) TestDrawAndRepay_ReferenceScenario() {
	acc := s.deposit("mem_1", 2000) // 5,000,000
	s.assertDecimal(5000000, acc.Balance)

	loan, created, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(2000000)}, operator)
	s.Require().NoError(err)
	s.True(created)
	s.assertDecimal(2000000, loan.OutstandingBalance)
	s.assertDecimal(3000000, loan.RemainingCollateral)
	s.assertDecimal(3000000, s.account("mem_1").Balance)

	rec, created, err := s.repay("mem_1", loan.LoanID, 500000)
	s.Require().NoError(err)
	s.True(created)
	s.assertDecimal(500000, rec.AmountApplied)
	s.assertDecimal(1500000, rec.BalanceAfter)
	s.assertDecimal(3000000, rec.AccountBalanceBefore)
	s.assertDecimal(3500000, rec.AccountBalanceAfter)
	s.assertDecimal(3500000, s.account("mem_1").Balance)

	rec2, created, err := s.repay("mem_1", loan.LoanID, 1500000)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(rec.RepaymentID, rec2.RepaymentID)
	s.True(rec2.AmountApplied.IsZero())
	s.True(rec2.BalanceAfter.IsZero())
	s.assertDecimal(2000000, rec2.TotalRepaid)
	s.assertDecimal(3500000, rec2.AccountBalanceBefore)
	s.assertDecimal(5000000, rec2.AccountBalanceAfter)

	paid, err := s.svc.Loan.GetLoan(s.ctx, loan.LoanID)
	s.Require().NoError(err)
	s.True(paid.OutstandingBalance.IsZero())
	s.Equal(domain.LoanPaid, paid.Status)
	s.True(paid.IsBalanced())
	s.assertDecimal(5000000, s.account("mem_1").Balance)

	stored, err := s.svc.Repayment.GetRepayment(s.ctx, rec.RepaymentID)
	s.Require().NoError(err)
	s.assertDecimal(2000000, stored.TotalRepaid)

	page, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Ledger: "REPAYMENT"})
	s.Require().NoError(err)
	repayments := page.Entries
	s.Require().Len(repayments, 2)
	s.True(repayments[0].OutstandingBalance.IsZero())
	s.assertDecimal(2000000, repayments[0].CumulativeRepaid)
}

func (s *LedgerServicesTestSuite) TestDraw_InsufficientCollateralLeavesStateUntouched() {
	acc := s.deposit("mem_1", 800) // 2,000,000
	before := s.history("mem_1")

	_, _, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(3000000)}, operator)
	s.ErrorIs(err, apperrors.ErrInsufficientCollateral)

	after := s.account("mem_1")
	s.assertDecimal(2000000, after.Balance)
	s.Equal(acc.Version, after.Version)
	s.Equal(before, s.history("mem_1"))
}

func (s *LedgerServicesTestSuite) TestDraw_ChecksCollateralBeforeThreshold() {
	s.cfg.MinBalanceForLoan = d(10000)
	s.rebuild()
	acc := s.deposit("mem_1", 2) // 5,000

	_, _, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(6000)}, operator)
	s.ErrorIs(err, apperrors.ErrInsufficientCollateral)

	_, _, err = s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(1000)}, operator)
	s.ErrorIs(err, apperrors.ErrBelowMinimumThreshold)
	s.assertDecimal(5000, s.account("mem_1").Balance)
}

func (s *LedgerServicesTestSuite) TestDraw_ValidationAndLookupErrors() {
	acc := s.deposit("mem_1", 4)

	_, _, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: decimal.RequireFromString("10.5")}, operator)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, _, err = s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(0)}, operator)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, _, err = s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: "missing", Amount: d(100)}, operator)
	s.ErrorIs(err, apperrors.ErrAccountNotFound)

	_, err = s.svc.Loan.GetLoan(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrLoanNotFound)
}

func (s *LedgerServicesTestSuite) TestDraw_TopsUpExistingLoan() {
	acc := s.deposit("mem_1", 4) // 10,000
	first := s.draw(acc, 3000)

	loan, created, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(2000)}, operator)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.LoanID, loan.LoanID)
	s.assertDecimal(2000, loan.PrincipalAmount)
	s.assertDecimal(5000, loan.CumulativeDrawn)
	s.assertDecimal(5000, loan.OutstandingBalance)
	s.assertDecimal(5000, loan.RemainingCollateral)
	s.Equal(domain.LoanActive, loan.Status)
	s.assertDecimal(5000, s.account("mem_1").Balance)
}

func (s *LedgerServicesTestSuite) TestDraw_ParallelDrawsSerialize() {
	acc := s.deposit("mem_1", 2000) // 5,000,000

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_1", AccountID: acc.AccountID, Amount: d(3000000)}, operator)
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrInsufficientCollateral):
			rejected++
		}
	}
	s.Equal(1, ok)
	s.Equal(1, rejected)
	s.assertDecimal(2000000, s.account("mem_1").Balance)
}

func (s *LedgerServicesTestSuite) TestUpdateLoan_AdjustsPrincipalWithoutCollateralCheck() {
	acc := s.deposit("mem_1", 4) // 10,000
	loan := s.draw(acc, 4000)

	updated, err := s.svc.Loan.UpdateLoan(s.ctx, loan.LoanID, dto.UpdateLoanRequest{Amount: d(50000)}, operator)
	s.Require().NoError(err)
	s.assertDecimal(50000, updated.PrincipalAmount)
	s.assertDecimal(50000, updated.OutstandingBalance)
	s.assertDecimal(50000, updated.CumulativeDrawn)
	s.True(updated.IsBalanced())
	s.assertDecimal(6000, s.account("mem_1").Balance, "update must not move savings")

	page, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Ledger: "LOAN"})
	s.Require().NoError(err)
	entries := page.Entries
	s.Require().Len(entries, 2)
	s.Equal(domain.ActionUpdated, entries[0].Action)
	s.assertDecimal(46000, entries[0].Amount)
}

func (s *LedgerServicesTestSuite) TestUpdateLoan_CannotGoBelowRepaid() {
	acc := s.deposit("mem_1", 4)
	loan := s.draw(acc, 4000)
	_, _, err := s.repay("mem_1", loan.LoanID, 3000)
	s.Require().NoError(err)

	_, err = s.svc.Loan.UpdateLoan(s.ctx, loan.LoanID, dto.UpdateLoanRequest{Amount: d(2000)}, operator)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = s.svc.Loan.UpdateLoan(s.ctx, "missing", dto.UpdateLoanRequest{Amount: d(2000)}, operator)
	s.ErrorIs(err, apperrors.ErrLoanNotFound)
}

func (s *LedgerServicesTestSuite) TestDeleteLoan_RefundsOutstanding() {
	acc := s.deposit("mem_1", 2000) // 5,000,000
	loan := s.draw(acc, 2000000)
	_, _, err := s.repay("mem_1", loan.LoanID, 500000)
	s.Require().NoError(err)

	refunded, err := s.svc.Loan.DeleteLoan(s.ctx, loan.LoanID, operator)
	s.Require().NoError(err)
	s.assertDecimal(5000000, refunded.Balance)

	_, err = s.svc.Loan.GetLoan(s.ctx, loan.LoanID)
	s.ErrorIs(err, apperrors.ErrLoanNotFound)

	latest := s.history("mem_1")[0]
	s.Equal(domain.LedgerSavings, latest.Ledger)
	s.Equal(domain.ActionUpdated, latest.Action)
	s.assertDecimal(1500000, latest.Amount)
	s.assertDecimal(3500000, latest.AccountBalanceBefore)
	s.assertDecimal(5000000, latest.AccountBalanceAfter)

	_, err = s.svc.Loan.DeleteLoan(s.ctx, loan.LoanID, operator)
	s.ErrorIs(err, apperrors.ErrLoanNotFound)
}

// --- Repayments ---

func (s *LedgerServicesTestSuite) TestRepay_OverRepaymentLeavesStateUntouched() {
	acc := s.deposit("mem_1", 4)
	loan := s.draw(acc, 4000)
	historyBefore := s.history("mem_1")

	_, _, err := s.repay("mem_1", loan.LoanID, 4001)
	s.ErrorIs(err, apperrors.ErrOverRepayment)

	unchanged, err := s.svc.Loan.GetLoan(s.ctx, loan.LoanID)
	s.Require().NoError(err)
	s.assertDecimal(4000, unchanged.OutstandingBalance)
	s.True(unchanged.CumulativeRepaid.IsZero())
	s.assertDecimal(6000, s.account("mem_1").Balance)
	s.Equal(historyBefore, s.history("mem_1"))
}

func (s *LedgerServicesTestSuite) TestRepay_LookupErrors() {
	acc := s.deposit("mem_1", 4)
	loan := s.draw(acc, 4000)

	_, _, err := s.repay("mem_1", "missing", 100)
	s.ErrorIs(err, apperrors.ErrLoanNotFound)

	_, _, err = s.repay("mem_without_savings", loan.LoanID, 100)
	s.ErrorIs(err, apperrors.ErrAccountNotFound)

	_, _, err = s.repay("mem_1", loan.LoanID, -5)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = s.svc.Repayment.GetRepayment(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrRepaymentNotFound)
}

func (s *LedgerServicesTestSuite) TestRepay_PerPaymentPolicy() {
	s.cfg.RepaymentPolicy = domain.RepaymentPerPayment
	s.rebuild()

	acc := s.deposit("mem_1", 4)
	loan := s.draw(acc, 4000)

	first, created, err := s.repay("mem_1", loan.LoanID, 1000)
	s.Require().NoError(err)
	s.True(created)
	second, created, err := s.repay("mem_1", loan.LoanID, 3000)
	s.Require().NoError(err)
	s.True(created)

	s.NotEqual(first.RepaymentID, second.RepaymentID)
	s.assertDecimal(3000, second.AmountApplied)
	s.True(second.BalanceAfter.IsZero())
	s.assertDecimal(3000, second.TotalRepaid)
}

func (s *LedgerServicesTestSuite) TestRepay_ThirdPartyPayerIsCredited() {
	borrower := s.deposit("mem_1", 4)
	s.deposit("mem_2", 1) // 2,500
	loan := s.draw(borrower, 4000)

	rec, _, err := s.repay("mem_2", loan.LoanID, 1000)
	s.Require().NoError(err)
	s.Equal("mem_2", rec.MemberID)
	s.assertDecimal(3500, s.account("mem_2").Balance)
	s.assertDecimal(6000, s.account("mem_1").Balance)
}

func (s *LedgerServicesTestSuite) TestRepay_RefreshesEveryLoanOnPayerAccount() {
	acc := s.deposit("mem_1", 2000) // 5,000,000
	own := s.draw(acc, 1_000_000)
	shared, _, err := s.svc.Loan.DrawLoan(s.ctx, dto.DrawLoanRequest{MemberID: "mem_3", AccountID: acc.AccountID, Amount: d(1_000_000)}, operator)
	s.Require().NoError(err)

	_, _, err = s.repay("mem_1", own.LoanID, 500_000)
	s.Require().NoError(err)

	s.assertDecimal(3_500_000, s.account("mem_1").Balance)
	for _, id := range []string{own.LoanID, shared.LoanID} {
		loan, err := s.svc.Loan.GetLoan(s.ctx, id)
		s.Require().NoError(err)
		s.assertDecimal(3_500_000, loan.RemainingCollateral, "loan %s", id)
	}
}

// --- History policy ---

func (s *LedgerServicesTestSuite) TestBestEffortHistoryFailureDoesNotFailLedger() {
	failing := new(MockHistoryRepository)
	failing.On("Append", mock.Anything, mock.Anything).Return(errHistoryDown)
	history := services.NewHistoryService(portssvc.HistoryBestEffort, failing, services.WithHistoryPublisher(s.publisher))
	savings := services.NewSavingsService(s.repos.Tx, s.repos.SavingsRepo, history, d(2500))

	acc, created, err := savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 1}, operator)
	s.Require().NoError(err)
	s.True(created)
	s.assertDecimal(2500, acc.Balance)
	failing.AssertNumberOfCalls(s.T(), "Append", 1)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServicesTestSuite) TestTransactionalHistoryFailureRollsBack() {
	history := services.NewHistoryService(portssvc.HistoryTransactional, s.repos.HistoryRepo)
	savings := services.NewSavingsService(brokenHistoryTx{inner: s.repos.Tx}, s.repos.SavingsRepo, history, d(2500))

	_, _, err := savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 1}, operator)
	s.ErrorIs(err, errHistoryDown)

	_, err = s.svc.Savings.GetAccount(s.ctx, "mem_1")
	s.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (s *LedgerServicesTestSuite) TestTransactionalHistoryIsWrittenOnce() {
	s.cfg.HistoryMode = portssvc.HistoryTransactional
	s.rebuild()

	s.deposit("mem_1", 1)
	s.deposit("mem_1", 1)

	entries := s.history("mem_1")
	s.Len(entries, 2)
	s.NotEqual(entries[0].HistoryID, entries[1].HistoryID)
	s.publisher.AssertNumberOfCalls(s.T(), "Publish", 2)
}

// --- Conflicts ---

func (s *LedgerServicesTestSuite) TestConflictIsRetriedOnce() {
	tx := &conflictingTx{inner: s.repos.Tx, failures: 1}
	savings := services.NewSavingsService(tx, s.repos.SavingsRepo, s.svc.History, d(2500))

	_, _, err := savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 1}, operator)
	s.Require().NoError(err)
	s.Equal(int32(2), tx.calls.Load())
	s.Len(s.history("mem_1"), 1)
}

func (s *LedgerServicesTestSuite) TestSecondConflictIsSurfaced() {
	tx := &conflictingTx{inner: s.repos.Tx, failures: 2}
	savings := services.NewSavingsService(tx, s.repos.SavingsRepo, s.svc.History, d(2500))

	_, _, err := savings.Deposit(s.ctx, dto.DepositRequest{MemberID: "mem_1", Units: 1}, operator)
	s.ErrorIs(err, apperrors.ErrStorageConflict)
	s.Equal(int32(2), tx.calls.Load())
	s.Empty(s.history("mem_1"))
}

func (s *LedgerServicesTestSuite) TestListHistory_Validation() {
	_, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Ledger: "JOURNAL"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", NextToken: "%%%"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServicesTestSuite) TestListHistory_Pages() {
	for i := 0; i < 5; i++ {
		s.deposit("mem_1", 1)
	}

	first, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Limit: 2})
	s.Require().NoError(err)
	s.Equal(2, first.Count)
	s.Require().NotNil(first.NextToken)

	second, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Limit: 2, NextToken: *first.NextToken})
	s.Require().NoError(err)
	s.Equal(2, second.Count)
	s.Require().NotNil(second.NextToken)
	s.NotEqual(first.Entries[1].HistoryID, second.Entries[0].HistoryID)
	s.True(second.Entries[0].CreatedAt.Compare(first.Entries[1].CreatedAt) <= 0)

	last, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Limit: 2, NextToken: *second.NextToken})
	s.Require().NoError(err)
	s.Equal(1, last.Count)
	s.Nil(last.NextToken)
	s.Equal(domain.ActionCreated, last.Entries[0].Action)
}

func (s *LedgerServicesTestSuite) TestListHistory_FullPageKeepsNextToken() {
	for i := 0; i < domain.MaxHistoryLimit+5; i++ {
		s.deposit("mem_1", 1)
	}

	page, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Limit: domain.MaxHistoryLimit})
	s.Require().NoError(err)
	s.Equal(domain.MaxHistoryLimit, page.Count)
	s.Require().NotNil(page.NextToken)

	rest, err := s.svc.History.ListHistory(s.ctx, dto.ListHistoryParams{MemberID: "mem_1", Limit: domain.MaxHistoryLimit, NextToken: *page.NextToken})
	s.Require().NoError(err)
	s.Equal(5, rest.Count)
	s.Nil(rest.NextToken)
	s.Equal(domain.ActionCreated, rest.Entries[4].Action)
}

func TestLedgerServicesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServicesTestSuite))
}
