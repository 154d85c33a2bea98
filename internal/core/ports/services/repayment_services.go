package services

import (
	"context"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/SscSPs/coop_savings_ledger/internal/dto"
)

// RepaymentReaderSvc defines read operations for repayment records.
type RepaymentReaderSvc interface {
	GetRepayment(ctx context.Context, repaymentID string) (*domain.RepaymentRecord, error)
}

// RepaymentWriterSvc defines write operations for repayments.
type RepaymentWriterSvc interface {
	// Repay applies a payment to a loan and credits the payer's savings.
	// The boolean reports whether a new record was created.
	Repay(ctx context.Context, req dto.RepayLoanRequest, operatorID string) (*domain.RepaymentRecord, bool, error)
}

// RepaymentSvcFacade combines all repayment-related service interfaces.
type RepaymentSvcFacade interface {
	RepaymentReaderSvc
	RepaymentWriterSvc
}
