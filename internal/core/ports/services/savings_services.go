package services

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
)

// SavingsReaderSvc defines read operations for savings accounts.
type SavingsReaderSvc interface {
	// GetAccount retrieves the savings account owned by memberID.
	GetAccount(ctx context.Context, memberID string) (*domain.SavingsAccount, error)
}

// SavingsWriterSvc defines write operations for savings accounts.
type SavingsWriterSvc interface {
	// Deposit adds units to the member's account, opening it if needed.
	// The boolean reports whether the account was created.
	Deposit(ctx context.Context, req dto.DepositRequest, operatorID string) (*domain.SavingsAccount, bool, error)
}

// SavingsSvcFacade combines all savings-related service interfaces.
type SavingsSvcFacade interface {
	SavingsReaderSvc
	SavingsWriterSvc
}
