package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// MemberReader reads the identity records owned by the membership service.
type MemberReader interface {
	// FindMemberByID returns apperrors.ErrMemberNotFound when absent.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
}
