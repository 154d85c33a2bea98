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

const selectSavings = `
	SELECT account_id, member_id, unit_count, balance, total_contributed,
	       created_at, created_by, last_updated_at, last_updated_by, version
	FROM savings_accounts`

type PgxSavingsRepository struct {
	db querier
}

func newPgxSavingsRepository(db querier) *PgxSavingsRepository {
	return &PgxSavingsRepository{db: db}
}

// Ensure PgxSavingsRepository implements portsrepo.SavingsRepository
var _ portsrepo.SavingsRepository = (*PgxSavingsRepository)(nil)

func (r *PgxSavingsRepository) findOne(ctx context.Context, query string, arg string) (*domain.SavingsAccount, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings account %s: %w", arg, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.SavingsAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read savings account %s: %w", arg, err)
	}
	acc := mapping.ToDomainSavingsAccount(row)
	return &acc, nil
}

// FindByMemberID retrieves the member's account without locking it.
func (r *PgxSavingsRepository) FindByMemberID(ctx context.Context, memberID string) (*domain.SavingsAccount, error) {
	return r.findOne(ctx, selectSavings+` WHERE member_id = $1`, memberID)
}

// FindByMemberIDForUpdate retrieves and row-locks the member's account.
func (r *PgxSavingsRepository) FindByMemberIDForUpdate(ctx context.Context, memberID string) (*domain.SavingsAccount, error) {
	return r.findOne(ctx, selectSavings+` WHERE member_id = $1 FOR UPDATE`, memberID)
}

// FindByIDForUpdate retrieves and row-locks an account by ID.
func (r *PgxSavingsRepository) FindByIDForUpdate(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	return r.findOne(ctx, selectSavings+` WHERE account_id = $1 FOR UPDATE`, accountID)
}

// Insert persists a new account at version 1.
func (r *PgxSavingsRepository) Insert(ctx context.Context, acc *domain.SavingsAccount) error {
	m := mapping.ToModelSavingsAccount(*acc)
	query := `
		INSERT INTO savings_accounts (account_id, member_id, unit_count, balance, total_contributed,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID, m.MemberID, m.UnitCount, m.Balance, m.TotalContributed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent first deposit won the race for this member.
			return fmt.Errorf("%w: %w", apperrors.ErrStorageConflict, apperrors.ErrDuplicateMember)
		}
		return fmt.Errorf("failed to insert savings account %s: %w", m.AccountID, err)
	}
	acc.Version = 1
	return nil
}

// Update writes balance and unit changes guarded by the version column.
func (r *PgxSavingsRepository) Update(ctx context.Context, acc *domain.SavingsAccount) error {
	m := mapping.ToModelSavingsAccount(*acc)
	query := `
		UPDATE savings_accounts
		SET unit_count = $2, balance = $3, total_contributed = $4,
		    last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE account_id = $1 AND version = $7;
	`
	tag, err := r.db.Exec(ctx, query,
		m.AccountID, m.UnitCount, m.Balance, m.TotalContributed,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: savings account %s changed underneath", apperrors.ErrStorageConflict, m.AccountID)
	}
	acc.Version++
	return nil
}
