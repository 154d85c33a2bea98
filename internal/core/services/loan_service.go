package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type loanService struct {
	BaseService
	tx         portsrepo.TxRunner
	reader     portsrepo.LoanReader
	history    portssvc.HistoryRecorderSvc
	minBalance decimal.Decimal
}

// NewLoanService creates the loan ledger. minBalance is the savings balance
// an account must hold before any draw is allowed.
func NewLoanService(
	tx portsrepo.TxRunner,
	reader portsrepo.LoanReader,
	history portssvc.HistoryRecorderSvc,
	minBalance decimal.Decimal,
	opts ...ServiceOption,
) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(opts),
		tx:          tx,
		reader:      reader,
		history:     history,
		minBalance:  minBalance,
	}
}

func (s *loanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.reader.FindByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrLoanNotFound) {
			s.LogError(ctx, err, "Failed to load loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) DrawLoan(ctx context.Context, req dto.DrawLoanRequest, operatorID string) (*domain.Loan, bool, error) {
	if err := domain.ValidateWholeAmount(req.Amount); err != nil {
		return nil, false, err
	}
	if err := s.EnsureMember(ctx, req.MemberID); err != nil {
		return nil, false, err
	}

	var (
		result  domain.Loan
		created bool
		entry   domain.HistoryEntry
	)

	err := s.retryOnConflict(ctx, "draw_loan", func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
			now := time.Now().UTC()

			acc, err := r.Savings.FindByIDForUpdate(ctx, req.AccountID)
			if err != nil {
				return err
			}
			if req.Amount.GreaterThan(acc.Balance) {
				return fmt.Errorf("%w: requested %s, balance %s", apperrors.ErrInsufficientCollateral, req.Amount, acc.Balance)
			}
			if acc.Balance.LessThan(s.minBalance) {
				return fmt.Errorf("%w: balance %s, minimum %s", apperrors.ErrBelowMinimumThreshold, acc.Balance, s.minBalance)
			}

			before := acc.Balance
			action := domain.ActionUpdated

			loan, err := r.Loans.FindByAccountAndMemberForUpdate(ctx, acc.AccountID, req.MemberID)
			switch {
			case errors.Is(err, apperrors.ErrLoanNotFound):
				l := domain.NewLoan(uuid.NewString(), acc.AccountID, req.MemberID, req.Amount, before, operatorID, now)
				if err := r.Loans.Insert(ctx, &l); err != nil {
					return err
				}
				loan, action = &l, domain.ActionCreated
			case err != nil:
				return err
			default:
				loan.Draw(req.Amount, before, operatorID, now)
				if err := r.Loans.Update(ctx, loan); err != nil {
					return err
				}
			}

			acc.Debit(req.Amount, operatorID, now)
			if err := r.Savings.Update(ctx, acc); err != nil {
				return err
			}

			result, created = *loan, action == domain.ActionCreated
			entry = domain.LoanHistory(action, *loan, req.Amount, before, acc.Balance, operatorID, now)
			return s.history.Stage(ctx, r, &entry)
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Loan draw failed",
			slog.String("account_id", req.AccountID),
			slog.String("member_id", req.MemberID),
			slog.String("amount", req.Amount.String()))
		return nil, false, err
	}

	s.history.Commit(ctx, entry)
	s.LogInfo(ctx, "Loan drawn",
		slog.String("loan_id", result.LoanID),
		slog.String("amount", req.Amount.String()),
		slog.String("outstanding", result.OutstandingBalance.String()),
		slog.Bool("created", created))
	return &result, created, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, operatorID string) (*domain.Loan, error) {
	if err := domain.ValidateWholeAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := s.AuthorizeRole(ctx, operatorID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		result domain.Loan
		entry  domain.HistoryEntry
	)

	err := s.retryOnConflict(ctx, "update_loan", func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
			now := time.Now().UTC()

			acc, loan, err := lockLoanWithAccount(ctx, r, loanID)
			if err != nil {
				return err
			}

			delta := req.Amount.Sub(loan.PrincipalAmount)
			if err := loan.Reprice(req.Amount, operatorID, now); err != nil {
				return err
			}
			if err := r.Loans.Update(ctx, loan); err != nil {
				return err
			}

			result = *loan
			entry = domain.LoanHistory(domain.ActionUpdated, *loan, delta, acc.Balance, acc.Balance, operatorID, now)
			entry.Note = "principal set to " + req.Amount.String()
			return s.history.Stage(ctx, r, &entry)
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Loan update failed", slog.String("loan_id", loanID))
		return nil, err
	}

	s.history.Commit(ctx, entry)
	s.LogInfo(ctx, "Loan updated",
		slog.String("loan_id", loanID),
		slog.String("principal", result.PrincipalAmount.String()),
		slog.String("outstanding", result.OutstandingBalance.String()))
	return &result, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID string, operatorID string) (*domain.SavingsAccount, error) {
	if err := s.AuthorizeRole(ctx, operatorID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		result domain.SavingsAccount
		entry  domain.HistoryEntry
	)

	err := s.retryOnConflict(ctx, "delete_loan", func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
			now := time.Now().UTC()

			acc, loan, err := lockLoanWithAccount(ctx, r, loanID)
			if err != nil {
				return err
			}

			before := acc.Balance
			refund := loan.OutstandingBalance
			acc.Credit(refund, operatorID, now)
			if err := r.Savings.Update(ctx, acc); err != nil {
				return err
			}
			if err := r.Loans.Delete(ctx, loan.LoanID); err != nil {
				return err
			}
			if err := reconcileLoans(ctx, r, acc, now); err != nil {
				return err
			}

			result = *acc
			entry = domain.SavingsHistory(domain.ActionUpdated, *acc, 0, refund, before, operatorID, now)
			entry.Note = "refund of deleted loan " + loan.LoanID
			return s.history.Stage(ctx, r, &entry)
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Loan delete failed", slog.String("loan_id", loanID))
		return nil, err
	}

	s.history.Commit(ctx, entry)
	s.LogInfo(ctx, "Loan deleted",
		slog.String("loan_id", loanID),
		slog.String("refund", entry.Amount.String()),
		slog.String("balance", result.Balance.String()))
	return &result, nil
}

// lockLoanWithAccount locks the backing account before the loan so every
// ledger operation acquires rows in the same order.
func lockLoanWithAccount(ctx context.Context, r portsrepo.TxRepos, loanID string) (*domain.SavingsAccount, *domain.Loan, error) {
	peek, err := r.Loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	acc, err := r.Savings.FindByIDForUpdate(ctx, peek.AccountID)
	if err != nil {
		return nil, nil, err
	}
	loan, err := r.Loans.FindByIDForUpdate(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	return acc, loan, nil
}
