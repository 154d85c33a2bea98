package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DrawLoanRequest draws against a savings account. The amount accepts a JSON
// number or a numeric string and must be a positive whole number.
type DrawLoanRequest struct {
	MemberID  string          `json:"memberId" binding:"required"`
	AccountID string          `json:"accountId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"wholeamount"`
}

// UpdateLoanRequest sets a new principal on an existing loan.
type UpdateLoanRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"wholeamount"`
}

// LoanResponse mirrors domain.Loan.
type LoanResponse struct {
	LoanID              string            `json:"loanId"`
	AccountID           string            `json:"accountId"`
	MemberID            string            `json:"memberId"`
	PrincipalAmount     decimal.Decimal   `json:"principalAmount"`
	OutstandingBalance  decimal.Decimal   `json:"outstandingBalance"`
	CumulativeDrawn     decimal.Decimal   `json:"cumulativeDrawn"`
	CumulativeRepaid    decimal.Decimal   `json:"cumulativeRepaid"`
	RemainingCollateral decimal.Decimal   `json:"remainingCollateral"`
	Status              domain.LoanStatus `json:"status"`
	IssuerID            string            `json:"issuerId"`
	CreatedAt           time.Time         `json:"createdAt"`
	LastUpdatedAt       time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy       string            `json:"lastUpdatedBy"`
}

// ToLoanResponse converts a domain.Loan to its DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:              l.LoanID,
		AccountID:           l.AccountID,
		MemberID:            l.MemberID,
		PrincipalAmount:     l.PrincipalAmount,
		OutstandingBalance:  l.OutstandingBalance,
		CumulativeDrawn:     l.CumulativeDrawn,
		CumulativeRepaid:    l.CumulativeRepaid,
		RemainingCollateral: l.RemainingCollateral,
		Status:              l.Status,
		IssuerID:            l.IssuerID,
		CreatedAt:           l.CreatedAt,
		LastUpdatedAt:       l.LastUpdatedAt,
		LastUpdatedBy:       l.LastUpdatedBy,
	}
}
