package services

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
)

// HistoryMode selects when history entries are persisted.
type HistoryMode string

const (
	// HistoryBestEffort writes entries after the ledger commit; failures are only logged.
	HistoryBestEffort HistoryMode = "best_effort"
	// HistoryTransactional writes entries inside the ledger transaction.
	HistoryTransactional HistoryMode = "transactional"
)

// HistoryRecorderSvc is called by the ledgers around each mutation.
type HistoryRecorderSvc interface {
	// Stage runs inside the ledger transaction. It assigns the entry ID and,
	// in transactional mode, appends it through repos. An error aborts the
	// transaction.
	Stage(ctx context.Context, repos portsrepo.TxRepos, entry *domain.HistoryEntry) error

	// Commit runs after the ledger transaction committed. It never fails the caller.
	Commit(ctx context.Context, entry domain.HistoryEntry)
}

// HistoryReaderSvc lists recorded history.
type HistoryReaderSvc interface {
	// ListHistory returns one page of a member's history, newest first.
	ListHistory(ctx context.Context, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error)
}

// HistorySvcFacade combines all history-related service interfaces.
type HistorySvcFacade interface {
	HistoryRecorderSvc
	HistoryReaderSvc
}

// HistoryPublisher forwards committed entries to an event sink.
type HistoryPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}
