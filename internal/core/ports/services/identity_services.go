package services

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// IdentitySvc answers membership questions for the ledgers.
type IdentitySvc interface {
	Exists(ctx context.Context, memberID string) (bool, error)
	Role(ctx context.Context, memberID string) (domain.Role, error)
}
