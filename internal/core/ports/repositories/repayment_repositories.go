package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// RepaymentReader defines read operations for repayment records.
type RepaymentReader interface {
	FindByID(ctx context.Context, repaymentID string) (*domain.RepaymentRecord, error)
}

// RepaymentRepository is the transactional view of repayment records.
type RepaymentRepository interface {
	RepaymentReader

	// FindByLoanAndMemberForUpdate returns the accumulating record for a payer.
	// With several records for the pair the most recent one is returned.
	FindByLoanAndMemberForUpdate(ctx context.Context, loanID, memberID string) (*domain.RepaymentRecord, error)

	Insert(ctx context.Context, record *domain.RepaymentRecord) error
	Update(ctx context.Context, record *domain.RepaymentRecord) error
}
