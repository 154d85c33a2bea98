package memory

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// The committed* types read and append outside of a transaction.

type committedSavings struct{ s *Store }

func (c committedSavings) FindByMemberID(ctx context.Context, memberID string) (acc *domain.SavingsAccount, err error) {
	c.s.view(func(st *state) { acc, err = savingsRepo{st}.FindByMemberID(ctx, memberID) })
	return acc, err
}

type committedLoans struct{ s *Store }

func (c committedLoans) FindByID(ctx context.Context, loanID string) (loan *domain.Loan, err error) {
	c.s.view(func(st *state) { loan, err = loanRepo{st}.FindByID(ctx, loanID) })
	return loan, err
}

type committedRepayments struct{ s *Store }

func (c committedRepayments) FindByID(ctx context.Context, repaymentID string) (rec *domain.RepaymentRecord, err error) {
	c.s.view(func(st *state) { rec, err = repaymentRepo{st}.FindByID(ctx, repaymentID) })
	return rec, err
}

type committedHistory struct{ s *Store }

func (c committedHistory) Append(ctx context.Context, entry domain.HistoryEntry) (err error) {
	c.s.view(func(st *state) { err = historyRepo{st}.Append(ctx, entry) })
	return err
}

func (c committedHistory) List(ctx context.Context, filter domain.HistoryFilter) (entries []domain.HistoryEntry, err error) {
	c.s.view(func(st *state) { entries, err = historyRepo{st}.List(ctx, filter) })
	return entries, err
}

type memberDirectory struct{ s *Store }

func (d memberDirectory) FindMemberByID(_ context.Context, memberID string) (*domain.Member, error) {
	m, ok := d.s.members[memberID]
	if !ok {
		return nil, apperrors.ErrMemberNotFound
	}
	return &m, nil
}
