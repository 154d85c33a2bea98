package services

import (
	"context"
	"errors"
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

type repaymentService struct {
	BaseService
	tx      portsrepo.TxRunner
	reader  portsrepo.RepaymentReader
	history portssvc.HistoryRecorderSvc
	policy  domain.RepaymentPolicy
}

// NewRepaymentService creates the repayment ledger.
func NewRepaymentService(
	tx portsrepo.TxRunner,
	reader portsrepo.RepaymentReader,
	history portssvc.HistoryRecorderSvc,
	policy domain.RepaymentPolicy,
	opts ...ServiceOption,
) portssvc.RepaymentSvcFacade {
	if !policy.Valid() {
		policy = domain.RepaymentAccumulate
	}
	return &repaymentService{
		BaseService: newBaseService(opts),
		tx:          tx,
		reader:      reader,
		history:     history,
		policy:      policy,
	}
}

func (s *repaymentService) GetRepayment(ctx context.Context, repaymentID string) (*domain.RepaymentRecord, error) {
	rec, err := s.reader.FindByID(ctx, repaymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRepaymentNotFound) {
			s.LogError(ctx, err, "Failed to load repayment", slog.String("repayment_id", repaymentID))
		}
		return nil, err
	}
	return rec, nil
}

func (s *repaymentService) Repay(ctx context.Context, req dto.RepayLoanRequest, operatorID string) (*domain.RepaymentRecord, bool, error) {
	if err := domain.ValidateWholeAmount(req.Amount); err != nil {
		return nil, false, err
	}
	if err := s.EnsureMember(ctx, req.MemberID); err != nil {
		return nil, false, err
	}

	var (
		result  domain.RepaymentRecord
		created bool
		entry   domain.HistoryEntry
	)

	err := s.retryOnConflict(ctx, "repay", func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
			now := time.Now().UTC()

			if _, err := r.Loans.FindByID(ctx, req.LoanID); err != nil {
				return err
			}
			// Accounts are locked before loans, as in every other ledger operation.
			acc, err := r.Savings.FindByMemberIDForUpdate(ctx, req.MemberID)
			if err != nil {
				return err
			}
			loan, err := r.Loans.FindByIDForUpdate(ctx, req.LoanID)
			if err != nil {
				return err
			}

			before := acc.Balance
			if err := loan.Repay(req.Amount, operatorID, now); err != nil {
				return err
			}
			acc.Credit(req.Amount, operatorID, now)
			if err := r.Loans.Update(ctx, loan); err != nil {
				return err
			}
			if err := r.Savings.Update(ctx, acc); err != nil {
				return err
			}
			if err := reconcileLoans(ctx, r, acc, now); err != nil {
				return err
			}

			rec, isNew, err := s.applyRecord(ctx, r, req, loan, before, acc.Balance, operatorID, now)
			if err != nil {
				return err
			}

			action := domain.ActionUpdated
			if isNew {
				action = domain.ActionCreated
			}
			result, created = *rec, isNew
			entry = domain.RepaymentHistory(action, *rec, *loan, req.Amount, before, acc.Balance, operatorID, now)
			return s.history.Stage(ctx, r, &entry)
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Repayment failed",
			slog.String("loan_id", req.LoanID),
			slog.String("member_id", req.MemberID),
			slog.String("amount", req.Amount.String()))
		return nil, false, err
	}

	s.history.Commit(ctx, entry)
	s.LogInfo(ctx, "Repayment recorded",
		slog.String("repayment_id", result.RepaymentID),
		slog.String("loan_id", req.LoanID),
		slog.String("amount", req.Amount.String()),
		slog.String("loan_balance", entry.OutstandingBalance.String()),
		slog.Bool("created", created))
	return &result, created, nil
}

// applyRecord writes the repayment record according to the configured policy.
func (s *repaymentService) applyRecord(
	ctx context.Context,
	r portsrepo.TxRepos,
	req dto.RepayLoanRequest,
	loan *domain.Loan,
	accountBefore, accountAfter decimal.Decimal,
	operatorID string,
	now time.Time,
) (*domain.RepaymentRecord, bool, error) {
	if s.policy == domain.RepaymentAccumulate {
		rec, err := r.Repayments.FindByLoanAndMemberForUpdate(ctx, loan.LoanID, req.MemberID)
		switch {
		case err == nil:
			rec.Accumulate(req.Amount, loan.OutstandingBalance, accountBefore, accountAfter, operatorID, now)
			if err := r.Repayments.Update(ctx, rec); err != nil {
				return nil, false, err
			}
			return rec, false, nil
		case !errors.Is(err, apperrors.ErrRepaymentNotFound):
			return nil, false, err
		}
	}

	rec := domain.NewRepaymentRecord(uuid.NewString(), loan.LoanID, req.MemberID,
		req.Amount, loan.OutstandingBalance, accountBefore, accountAfter, operatorID, now)
	if err := r.Repayments.Insert(ctx, &rec); err != nil {
		return nil, false, err
	}
	return &rec, true, nil
}
