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

type savingsService struct {
	BaseService
	tx        portsrepo.TxRunner
	reader    portsrepo.SavingsReader
	history   portssvc.HistoryRecorderSvc
	unitPrice decimal.Decimal
}

// NewSavingsService creates the savings ledger.
func NewSavingsService(
	tx portsrepo.TxRunner,
	reader portsrepo.SavingsReader,
	history portssvc.HistoryRecorderSvc,
	unitPrice decimal.Decimal,
	opts ...ServiceOption,
) portssvc.SavingsSvcFacade {
	return &savingsService{
		BaseService: newBaseService(opts),
		tx:          tx,
		reader:      reader,
		history:     history,
		unitPrice:   unitPrice,
	}
}

func (s *savingsService) GetAccount(ctx context.Context, memberID string) (*domain.SavingsAccount, error) {
	acc, err := s.reader.FindByMemberID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			s.LogError(ctx, err, "Failed to load savings account", slog.String("member_id", memberID))
		}
		return nil, err
	}
	return acc, nil
}

func (s *savingsService) Deposit(ctx context.Context, req dto.DepositRequest, operatorID string) (*domain.SavingsAccount, bool, error) {
	if err := domain.ValidateUnits(req.Units); err != nil {
		return nil, false, err
	}
	if err := s.EnsureMember(ctx, req.MemberID); err != nil {
		return nil, false, err
	}

	var (
		account domain.SavingsAccount
		created bool
		entry   domain.HistoryEntry
	)

	err := s.retryOnConflict(ctx, "deposit", func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
			now := time.Now().UTC()

			existing, err := r.Savings.FindByMemberIDForUpdate(ctx, req.MemberID)
			switch {
			case errors.Is(err, apperrors.ErrAccountNotFound):
				acc := domain.NewSavingsAccount(uuid.NewString(), req.MemberID, req.Units, s.unitPrice, operatorID, now)
				if err := r.Savings.Insert(ctx, &acc); err != nil {
					return err
				}
				account, created = acc, true
				entry = domain.SavingsHistory(domain.ActionCreated, acc, req.Units, acc.Balance, decimal.Zero, operatorID, now)
			case err != nil:
				return err
			default:
				before := existing.Balance
				added := existing.AddUnits(req.Units, s.unitPrice, operatorID, now)
				if err := r.Savings.Update(ctx, existing); err != nil {
					return err
				}
				if err := reconcileLoans(ctx, r, existing, now); err != nil {
					return err
				}
				account, created = *existing, false
				entry = domain.SavingsHistory(domain.ActionUpdated, *existing, req.Units, added, before, operatorID, now)
			}

			return s.history.Stage(ctx, r, &entry)
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Deposit failed", slog.String("member_id", req.MemberID), slog.Int64("units", req.Units))
		return nil, false, err
	}

	s.history.Commit(ctx, entry)
	s.LogInfo(ctx, "Deposit recorded",
		slog.String("account_id", account.AccountID),
		slog.Int64("units", req.Units),
		slog.String("balance", account.Balance.String()),
		slog.Bool("created", created))
	return &account, created, nil
}

// reconcileLoans refreshes the collateral snapshot of every loan backed by
// acc after its balance changed.
func reconcileLoans(ctx context.Context, r portsrepo.TxRepos, acc *domain.SavingsAccount, now time.Time) error {
	loans, err := r.Loans.ListByAccountForUpdate(ctx, acc.AccountID)
	if err != nil {
		return err
	}
	for i := range loans {
		if loans[i].RemainingCollateral.Equal(acc.Balance) {
			continue
		}
		loans[i].RefreshCollateral(acc.Balance, now)
		if err := r.Loans.Update(ctx, &loans[i]); err != nil {
			return err
		}
	}
	return nil
}
