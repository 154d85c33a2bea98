package services_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockHistoryPublisher is a mock type for the HistoryPublisher interface
type MockHistoryPublisher struct {
	mock.Mock
}

func (m *MockHistoryPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

// MockIdentity is a mock type for the IdentitySvc interface
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) Exists(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentity) Role(ctx context.Context, memberID string) (domain.Role, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(domain.Role), args.Error(1)
}

// MockHistoryRepository is a mock type for the HistoryRepository interface
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

var errHistoryDown = errors.New("history store unavailable")

// brokenHistoryTx swaps the transactional history repository for one that fails.
type brokenHistoryTx struct {
	inner portsrepo.TxRunner
}

func (b brokenHistoryTx) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return b.inner.RunInTx(ctx, func(ctx context.Context, r portsrepo.TxRepos) error {
		failing := new(MockHistoryRepository)
		failing.On("Append", mock.Anything, mock.Anything).Return(errHistoryDown)
		r.History = failing
		return fn(ctx, r)
	})
}

// conflictingTx reports a storage conflict for the first `failures` calls.
type conflictingTx struct {
	inner    portsrepo.TxRunner
	failures int32
	calls    atomic.Int32
}

func (c *conflictingTx) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if c.calls.Add(1) <= c.failures {
		return apperrors.ErrStorageConflict
	}
	return c.inner.RunInTx(ctx, fn)
}
