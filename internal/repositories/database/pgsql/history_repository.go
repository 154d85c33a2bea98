package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_ledger/internal/models"
	"github.com/SscSPs/coop_savings_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxHistoryRepository struct {
	db querier
}

func newPgxHistoryRepository(db querier) *PgxHistoryRepository {
	return &PgxHistoryRepository{db: db}
}

// Ensure PgxHistoryRepository implements portsrepo.HistoryRepository
var _ portsrepo.HistoryRepository = (*PgxHistoryRepository)(nil)

// Append inserts one immutable history row.
func (r *PgxHistoryRepository) Append(ctx context.Context, entry domain.HistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)
	query := `
		INSERT INTO ledger_history (history_id, ledger, subject_id, member_id, action, amount, units,
			account_balance_before, account_balance_after, outstanding_balance,
			cumulative_drawn, cumulative_repaid, note, processed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		m.HistoryID, m.Ledger, m.SubjectID, m.MemberID, m.Action, m.Amount, m.Units,
		m.AccountBalanceBefore, m.AccountBalanceAfter, m.OutstandingBalance,
		m.CumulativeDrawn, m.CumulativeRepaid, m.Note, m.ProcessedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", m.HistoryID, err)
	}
	return nil
}

// List returns a member's entries, newest first in insertion order. An
// unknown cursor yields no rows.
func (r *PgxHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := `
		SELECT history_id, ledger, subject_id, member_id, action, amount, units,
		       account_balance_before, account_balance_after, outstanding_balance,
		       cumulative_drawn, cumulative_repaid, note, processed_by, created_at
		FROM ledger_history
		WHERE member_id = $1
		  AND ($2 = '' OR ledger = $2)
		  AND ($4 = '' OR seq < (SELECT seq FROM ledger_history WHERE history_id = $4))
		ORDER BY seq DESC
		LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, filter.MemberID, string(filter.Ledger), filter.Limit, filter.After)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for member %s: %w", filter.MemberID, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HistoryEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to read history for member %s: %w", filter.MemberID, err)
	}
	return mapping.ToDomainHistoryEntries(entries), nil
}
