package services

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
)

// LoanReaderSvc defines read operations for loans.
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)
}

// LoanWriterSvc defines write operations for loans.
type LoanWriterSvc interface {
	// DrawLoan opens or tops up the loan for (accountId, memberId).
	// The boolean reports whether the loan was created.
	DrawLoan(ctx context.Context, req dto.DrawLoanRequest, operatorID string) (*domain.Loan, bool, error)

	// UpdateLoan sets a new principal without collateral checks. Admin only.
	UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, operatorID string) (*domain.Loan, error)

	// DeleteLoan removes the loan and refunds its outstanding balance to the
	// backing account, which is returned.
	DeleteLoan(ctx context.Context, loanID string, operatorID string) (*domain.SavingsAccount, error)
}

// LoanSvcFacade combines all loan-related service interfaces.
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
