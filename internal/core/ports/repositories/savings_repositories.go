package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// SavingsReader defines read operations for savings accounts.
type SavingsReader interface {
	// FindByMemberID returns apperrors.ErrAccountNotFound when the member has no account.
	FindByMemberID(ctx context.Context, memberID string) (*domain.SavingsAccount, error)
}

// SavingsRepository is the transactional view of savings accounts.
type SavingsRepository interface {
	SavingsReader

	// FindByMemberIDForUpdate loads and locks the member's account.
	FindByMemberIDForUpdate(ctx context.Context, memberID string) (*domain.SavingsAccount, error)

	// FindByIDForUpdate loads and locks an account by its ID.
	FindByIDForUpdate(ctx context.Context, accountID string) (*domain.SavingsAccount, error)

	// Insert persists a new account. A second account for the same member
	// fails with apperrors.ErrStorageConflict.
	Insert(ctx context.Context, account *domain.SavingsAccount) error

	// Update writes the account if its version is unchanged and bumps the version.
	Update(ctx context.Context, account *domain.SavingsAccount) error
}
