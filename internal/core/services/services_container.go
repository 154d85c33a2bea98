package services

import (
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.HistoryPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var opts []ServiceOption
	if repos.MemberRepo != nil {
		container.Identity = NewIdentityService(repos.MemberRepo)
		opts = append(opts, WithIdentity(container.Identity))
	}

	var historyOpts []HistoryServiceOption
	if publisher != nil {
		historyOpts = append(historyOpts, WithHistoryPublisher(publisher))
	}
	container.History = NewHistoryService(cfg.HistoryMode, repos.HistoryRepo, historyOpts...)

	container.Savings = NewSavingsService(repos.Tx, repos.SavingsRepo, container.History, cfg.UnitPrice, opts...)
	container.Loan = NewLoanService(repos.Tx, repos.LoanRepo, container.History, cfg.MinBalanceForLoan, opts...)
	container.Repayment = NewRepaymentService(repos.Tx, repos.RepaymentRepo, container.History, cfg.RepaymentPolicy, opts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SavingsSvcFacade   = (*savingsService)(nil)
	_ portssvc.LoanSvcFacade      = (*loanService)(nil)
	_ portssvc.RepaymentSvcFacade = (*repaymentService)(nil)
	_ portssvc.HistorySvcFacade   = (*historyService)(nil)
	_ portssvc.IdentitySvc        = (*identityService)(nil)
)
