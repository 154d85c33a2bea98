package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every ledger repository to the pool. Readers
// run outside transactions; writes go through the returned TxRunner.
func NewRepositoryProvider(pool *pgxpool.Pool, statementTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Tx:            &BaseRepository{Pool: pool, StatementTimeout: statementTimeout},
		SavingsRepo:   newPgxSavingsRepository(pool),
		LoanRepo:      newPgxLoanRepository(pool),
		RepaymentRepo: newPgxRepaymentRepository(pool),
		HistoryRepo:   newPgxHistoryRepository(pool),
		MemberRepo:    newPgxMemberRepository(pool),
	}
}
