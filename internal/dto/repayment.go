package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RepayLoanRequest applies a payment from MemberID against LoanID.
type RepayLoanRequest struct {
	MemberID string          `json:"memberId" binding:"required"`
	LoanID   string          `json:"loanId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"wholeamount"`
}

// RepaymentResponse mirrors domain.RepaymentRecord.
type RepaymentResponse struct {
	RepaymentID          string          `json:"repaymentId"`
	LoanID               string          `json:"loanId"`
	MemberID             string          `json:"memberId"`
	AmountApplied        decimal.Decimal `json:"amountApplied"`
	BalanceAfter         decimal.Decimal `json:"balanceAfter"`
	AccountBalanceBefore decimal.Decimal `json:"accountBalanceBefore"`
	AccountBalanceAfter  decimal.Decimal `json:"accountBalanceAfter"`
	TotalRepaid          decimal.Decimal `json:"totalRepaid"`
	ProcessedBy          string          `json:"processedBy"`
	CreatedAt            time.Time       `json:"createdAt"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ToRepaymentResponse converts a domain.RepaymentRecord to its DTO.
func ToRepaymentResponse(r *domain.RepaymentRecord) RepaymentResponse {
	return RepaymentResponse{
		RepaymentID:          r.RepaymentID,
		LoanID:               r.LoanID,
		MemberID:             r.MemberID,
		AmountApplied:        r.AmountApplied,
		BalanceAfter:         r.BalanceAfter,
		AccountBalanceBefore: r.AccountBalanceBefore,
		AccountBalanceAfter:  r.AccountBalanceAfter,
		TotalRepaid:          r.TotalRepaid,
		ProcessedBy:          r.ProcessedBy,
		CreatedAt:            r.CreatedAt,
		LastUpdatedAt:        r.LastUpdatedAt,
	}
}
