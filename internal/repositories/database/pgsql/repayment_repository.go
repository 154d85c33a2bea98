package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_ledger/internal/models"
	"github.com/SscSPs/coop_savings_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const selectRepayments = `
	SELECT repayment_id, loan_id, member_id, amount_applied, balance_after,
	       account_balance_before, account_balance_after, total_repaid, processed_by,
	       created_at, created_by, last_updated_at, last_updated_by, version
	FROM repayments`

type PgxRepaymentRepository struct {
	db querier
}

func newPgxRepaymentRepository(db querier) *PgxRepaymentRepository {
	return &PgxRepaymentRepository{db: db}
}

// Ensure PgxRepaymentRepository implements portsrepo.RepaymentRepository
var _ portsrepo.RepaymentRepository = (*PgxRepaymentRepository)(nil)

func (r *PgxRepaymentRepository) findOne(ctx context.Context, query string, args ...any) (*domain.RepaymentRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query repayment: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Repayment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRepaymentNotFound
		}
		return nil, fmt.Errorf("failed to read repayment: %w", err)
	}
	rec := mapping.ToDomainRepayment(row)
	return &rec, nil
}

func (r *PgxRepaymentRepository) FindByID(ctx context.Context, repaymentID string) (*domain.RepaymentRecord, error) {
	return r.findOne(ctx, selectRepayments+` WHERE repayment_id = $1`, repaymentID)
}

func (r *PgxRepaymentRepository) FindByLoanAndMemberForUpdate(ctx context.Context, loanID, memberID string) (*domain.RepaymentRecord, error) {
	query := selectRepayments + `
		WHERE loan_id = $1 AND member_id = $2
		ORDER BY created_at DESC, repayment_id DESC
		LIMIT 1
		FOR UPDATE`
	return r.findOne(ctx, query, loanID, memberID)
}

func (r *PgxRepaymentRepository) Insert(ctx context.Context, rec *domain.RepaymentRecord) error {
	m := mapping.ToModelRepayment(*rec)
	query := `
		INSERT INTO repayments (repayment_id, loan_id, member_id, amount_applied, balance_after,
			account_balance_before, account_balance_after, total_repaid, processed_by,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1);
	`
	_, err := r.db.Exec(ctx, query,
		m.RepaymentID, m.LoanID, m.MemberID, m.AmountApplied, m.BalanceAfter,
		m.AccountBalanceBefore, m.AccountBalanceAfter, m.TotalRepaid, m.ProcessedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: repayment %s already exists", apperrors.ErrStorageConflict, m.RepaymentID)
		}
		return fmt.Errorf("failed to insert repayment %s: %w", m.RepaymentID, err)
	}
	rec.Version = 1
	return nil
}

func (r *PgxRepaymentRepository) Update(ctx context.Context, rec *domain.RepaymentRecord) error {
	m := mapping.ToModelRepayment(*rec)
	query := `
		UPDATE repayments
		SET amount_applied = $2, balance_after = $3, account_balance_before = $4,
		    account_balance_after = $5, total_repaid = $6, processed_by = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE repayment_id = $1 AND version = $10;
	`
	tag, err := r.db.Exec(ctx, query,
		m.RepaymentID, m.AmountApplied, m.BalanceAfter, m.AccountBalanceBefore,
		m.AccountBalanceAfter, m.TotalRepaid, m.ProcessedBy,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update repayment %s: %w", m.RepaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repayment %s changed underneath", apperrors.ErrStorageConflict, m.RepaymentID)
	}
	rec.Version++
	return nil
}
