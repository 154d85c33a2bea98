package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
)

// HistoryRepository is the append-only store of history entries.
type HistoryRepository interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns entries matching filter, newest first.
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)
}
