package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// LoanReader defines read operations for loans.
type LoanReader interface {
	// FindByID returns apperrors.ErrLoanNotFound when absent.
	FindByID(ctx context.Context, loanID string) (*domain.Loan, error)
}

// LoanRepository is the transactional view of loans.
type LoanRepository interface {
	LoanReader

	FindByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindByAccountAndMemberForUpdate returns the single loan for the pair.
	FindByAccountAndMemberForUpdate(ctx context.Context, accountID, memberID string) (*domain.Loan, error)

	// ListByAccountForUpdate returns every loan backed by the account.
	ListByAccountForUpdate(ctx context.Context, accountID string) ([]domain.Loan, error)

	Insert(ctx context.Context, loan *domain.Loan) error
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, loanID string) error
}
