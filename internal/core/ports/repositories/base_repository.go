package repositories

import "context"

// TxRepos is the set of repositories bound to a single storage transaction.
// Reads through it take row locks where the storage supports them.
type TxRepos struct {
	Savings    SavingsRepository
	Loans      LoanRepository
	Repayments RepaymentRepository
	History    HistoryRepository
}

// TxFunc is a unit of work executed inside a transaction.
type TxFunc func(ctx context.Context, repos TxRepos) error

// TxRunner runs a unit of work atomically. If fn returns an error every
// write made through repos is discarded.
type TxRunner interface {
	RunInTx(ctx context.Context, fn TxFunc) error
}
