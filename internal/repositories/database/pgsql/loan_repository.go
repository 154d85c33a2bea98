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

const selectLoans = `
	SELECT loan_id, account_id, member_id, principal_amount, outstanding_balance,
	       cumulative_drawn, cumulative_repaid, remaining_collateral, status, issuer_id,
	       created_at, created_by, last_updated_at, last_updated_by, version
	FROM loans`

type PgxLoanRepository struct {
	db querier
}

func newPgxLoanRepository(db querier) *PgxLoanRepository {
	return &PgxLoanRepository{db: db}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepository
var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

func (r *PgxLoanRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to read loan: %w", err)
	}
	loan := mapping.ToDomainLoan(row)
	return &loan, nil
}

func (r *PgxLoanRepository) FindByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findOne(ctx, selectLoans+` WHERE loan_id = $1`, loanID)
}

func (r *PgxLoanRepository) FindByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findOne(ctx, selectLoans+` WHERE loan_id = $1 FOR UPDATE`, loanID)
}

func (r *PgxLoanRepository) FindByAccountAndMemberForUpdate(ctx context.Context, accountID, memberID string) (*domain.Loan, error) {
	return r.findOne(ctx, selectLoans+` WHERE account_id = $1 AND member_id = $2 FOR UPDATE`, accountID, memberID)
}

func (r *PgxLoanRepository) ListByAccountForUpdate(ctx context.Context, accountID string) ([]domain.Loan, error) {
	rows, err := r.db.Query(ctx, selectLoans+` WHERE account_id = $1 ORDER BY created_at, loan_id FOR UPDATE`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for account %s: %w", accountID, err)
	}
	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		return nil, fmt.Errorf("failed to read loans for account %s: %w", accountID, err)
	}
	return mapping.ToDomainLoans(loans), nil
}

func (r *PgxLoanRepository) Insert(ctx context.Context, loan *domain.Loan) error {
	m := mapping.ToModelLoan(*loan)
	query := `
		INSERT INTO loans (loan_id, account_id, member_id, principal_amount, outstanding_balance,
			cumulative_drawn, cumulative_repaid, remaining_collateral, status, issuer_id,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1);
	`
	_, err := r.db.Exec(ctx, query,
		m.LoanID, m.AccountID, m.MemberID, m.PrincipalAmount, m.OutstandingBalance,
		m.CumulativeDrawn, m.CumulativeRepaid, m.RemainingCollateral, m.Status, m.IssuerID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: loan for account %s and member %s already exists", apperrors.ErrStorageConflict, m.AccountID, m.MemberID)
		}
		return fmt.Errorf("failed to insert loan %s: %w", m.LoanID, err)
	}
	loan.Version = 1
	return nil
}

func (r *PgxLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	m := mapping.ToModelLoan(*loan)
	query := `
		UPDATE loans
		SET principal_amount = $2, outstanding_balance = $3, cumulative_drawn = $4,
		    cumulative_repaid = $5, remaining_collateral = $6, status = $7, issuer_id = $8,
		    last_updated_at = $9, last_updated_by = $10, version = version + 1
		WHERE loan_id = $1 AND version = $11;
	`
	tag, err := r.db.Exec(ctx, query,
		m.LoanID, m.PrincipalAmount, m.OutstandingBalance, m.CumulativeDrawn,
		m.CumulativeRepaid, m.RemainingCollateral, m.Status, m.IssuerID,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", m.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s changed underneath", apperrors.ErrStorageConflict, m.LoanID)
	}
	loan.Version++
	return nil
}

func (r *PgxLoanRepository) Delete(ctx context.Context, loanID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLoanNotFound
	}
	return nil
}
