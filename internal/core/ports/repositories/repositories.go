package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Tx            TxRunner
	SavingsRepo   SavingsReader
	LoanRepo      LoanReader
	RepaymentRepo RepaymentReader
	HistoryRepo   HistoryRepository
	MemberRepo    MemberReader // nil disables identity checks
}
