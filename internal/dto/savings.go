package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest adds units to a member's savings, opening the account on first use.
type DepositRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Units    int64  `json:"units" binding:"required,gt=0"`
}

// SavingsAccountResponse mirrors domain.SavingsAccount.
type SavingsAccountResponse struct {
	AccountID        string          `json:"accountId"`
	MemberID         string          `json:"memberId"`
	UnitCount        int64           `json:"unitCount"`
	Balance          decimal.Decimal `json:"balance"`
	TotalContributed decimal.Decimal `json:"totalContributed"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToSavingsAccountResponse converts a domain.SavingsAccount to its DTO.
func ToSavingsAccountResponse(acc *domain.SavingsAccount) SavingsAccountResponse {
	return SavingsAccountResponse{
		AccountID:        acc.AccountID,
		MemberID:         acc.MemberID,
		UnitCount:        acc.UnitCount,
		Balance:          acc.Balance,
		TotalContributed: acc.TotalContributed,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}
