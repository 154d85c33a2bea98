package services

import (
	"context"
	"errors"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
)

type identityService struct {
	members portsrepo.MemberReader
}

// NewIdentityService answers membership questions from the member directory.
func NewIdentityService(members portsrepo.MemberReader) portssvc.IdentitySvc {
	return &identityService{members: members}
}

// Exists reports whether memberID is a known, active member.
func (s *identityService) Exists(ctx context.Context, memberID string) (bool, error) {
	m, err := s.members.FindMemberByID(ctx, memberID)
	if errors.Is(err, apperrors.ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.Status != domain.MemberInactive, nil
}

func (s *identityService) Role(ctx context.Context, memberID string) (domain.Role, error) {
	m, err := s.members.FindMemberByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	return m.Role, nil
}
