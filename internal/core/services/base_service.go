package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Identity portssvc.IdentitySvc
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithIdentity enables member existence and role checks.
func WithIdentity(identity portssvc.IdentitySvc) ServiceOption {
	return func(b *BaseService) {
		b.Identity = identity
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// EnsureMember fails with ErrMemberNotFound when the identity service does not
// know memberID. Without an identity service the check is skipped.
func (s *BaseService) EnsureMember(ctx context.Context, memberID string) error {
	if s.Identity == nil {
		s.LogDebug(ctx, "No identity service configured, skipping member check", slog.String("member_id", memberID))
		return nil
	}
	ok, err := s.Identity.Exists(ctx, memberID)
	if err != nil {
		return fmt.Errorf("checking member %s: %w", memberID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrMemberNotFound, memberID)
	}
	return nil
}

// AuthorizeRole checks that operatorID holds the required role. Without an
// identity service the check is skipped.
func (s *BaseService) AuthorizeRole(ctx context.Context, operatorID string, required domain.Role) error {
	if s.Identity == nil {
		s.LogDebug(ctx, "No identity service configured, access granted by default",
			slog.String("operator_id", operatorID),
			slog.String("required_role", string(required)))
		return nil
	}
	role, err := s.Identity.Role(ctx, operatorID)
	if errors.Is(err, apperrors.ErrMemberNotFound) {
		return fmt.Errorf("%w: unknown operator %s", apperrors.ErrForbidden, operatorID)
	}
	if err != nil {
		return fmt.Errorf("resolving role of %s: %w", operatorID, err)
	}
	if role != required {
		return fmt.Errorf("%w: %s role required", apperrors.ErrForbidden, required)
	}
	return nil
}

// retryOnConflict runs fn and, if it reports a storage conflict, runs it once more
// against fresh state.
func (s *BaseService) retryOnConflict(ctx context.Context, operation string, fn func() error) error {
	err := fn()
	if errors.Is(err, apperrors.ErrStorageConflict) {
		s.LogInfo(ctx, "Storage conflict, retrying once", slog.String("operation", operation), slog.String("error", err.Error()))
		err = fn()
	}
	return err
}
