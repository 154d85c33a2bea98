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

// PgxMemberRepository reads the members table. Rows are written by the
// membership service, never by the ledger.
type PgxMemberRepository struct {
	db querier
}

func newPgxMemberRepository(db querier) *PgxMemberRepository {
	return &PgxMemberRepository{db: db}
}

// Ensure PgxMemberRepository implements portsrepo.MemberReader
var _ portsrepo.MemberReader = (*PgxMemberRepository)(nil)

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	rows, err := r.db.Query(ctx, `SELECT member_id, name, role, status FROM members WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query member %s: %w", memberID, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Member])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to read member %s: %w", memberID, err)
	}
	member := mapping.ToDomainMember(row)
	return &member, nil
}
