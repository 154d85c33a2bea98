package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
	"github.com/SscSPs/coop_savings_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

type historyService struct {
	BaseService
	mode      portssvc.HistoryMode
	repo      portsrepo.HistoryRepository
	publisher portssvc.HistoryPublisher
}

// HistoryServiceOption configures the history recorder.
type HistoryServiceOption func(*historyService)

// WithHistoryPublisher forwards every committed entry to publisher.
func WithHistoryPublisher(publisher portssvc.HistoryPublisher) HistoryServiceOption {
	return func(s *historyService) {
		s.publisher = publisher
	}
}

// NewHistoryService creates the history recorder. repo is used outside of
// ledger transactions: for best-effort writes and for listings.
func NewHistoryService(mode portssvc.HistoryMode, repo portsrepo.HistoryRepository, opts ...HistoryServiceOption) portssvc.HistorySvcFacade {
	if mode != portssvc.HistoryTransactional {
		mode = portssvc.HistoryBestEffort
	}
	s := &historyService{mode: mode, repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *historyService) Stage(ctx context.Context, repos portsrepo.TxRepos, entry *domain.HistoryEntry) error {
	if entry.HistoryID == "" {
		entry.HistoryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if s.mode != portssvc.HistoryTransactional {
		return nil
	}
	if err := repos.History.Append(ctx, *entry); err != nil {
		return fmt.Errorf("recording %s history: %w", entry.Ledger, err)
	}
	return nil
}

func (s *historyService) Commit(ctx context.Context, entry domain.HistoryEntry) {
	if s.mode == portssvc.HistoryBestEffort {
		if err := s.repo.Append(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to record history entry",
				slog.String("history_id", entry.HistoryID),
				slog.String("ledger", string(entry.Ledger)),
				slog.String("subject_id", entry.SubjectID))
			return
		}
	}
	s.publish(ctx, entry)
}

func (s *historyService) publish(ctx context.Context, entry domain.HistoryEntry) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode history event", slog.String("history_id", entry.HistoryID))
		return
	}
	if err := s.publisher.Publish(ctx, RoutingKey(entry), body); err != nil {
		s.LogError(ctx, err, "Failed to publish history event", slog.String("history_id", entry.HistoryID))
	}
}

// RoutingKey is the event-sink routing key of entry, e.g. "history.loan.created".
func RoutingKey(entry domain.HistoryEntry) string {
	return "history." + strings.ToLower(string(entry.Ledger)) + "." + strings.ToLower(string(entry.Action))
}

func (s *historyService) ListHistory(ctx context.Context, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error) {
	if strings.TrimSpace(params.MemberID) == "" {
		return nil, fmt.Errorf("%w: memberId is required", apperrors.ErrValidation)
	}
	filter := params.ToFilter()
	if filter.Ledger != "" && !filter.Ledger.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger %q", apperrors.ErrValidation, params.Ledger)
	}
	if params.NextToken != "" {
		after, err := pagination.DecodeHistoryToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		filter.After = after
	}

	// One extra row tells whether another page exists.
	pageSize := filter.Limit
	filter.Limit++
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list history", slog.String("member_id", params.MemberID))
		return nil, err
	}

	resp := &dto.ListHistoryResponse{Entries: entries}
	if len(entries) > pageSize {
		resp.Entries = entries[:pageSize]
		token := pagination.EncodeHistoryToken(resp.Entries[pageSize-1].HistoryID)
		resp.NextToken = &token
	}
	resp.Count = len(resp.Entries)
	return resp, nil
}
