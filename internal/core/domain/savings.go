package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsAccount is a member's cumulative unit holding and its monetary balance.
// Balance starts as UnitCount × unit price but also moves with loan draws and
// repayments, so it is stored rather than derived.
type SavingsAccount struct {
	AccountID        string          `json:"accountID"`
	MemberID         string          `json:"memberID"` // unique
	UnitCount        int64           `json:"unitCount"`
	Balance          decimal.Decimal `json:"balance"`
	TotalContributed decimal.Decimal `json:"totalContributed"` // lifetime deposits, never reduced
	AuditFields
}

// NewSavingsAccount opens an account holding the first deposit.
func NewSavingsAccount(accountID, memberID string, units int64, unitPrice decimal.Decimal, operatorID string, now time.Time) SavingsAccount {
	value := unitPrice.Mul(decimal.NewFromInt(units))
	return SavingsAccount{
		AccountID:        accountID,
		MemberID:         memberID,
		UnitCount:        units,
		Balance:          value,
		TotalContributed: value,
		AuditFields:      newAuditFields(operatorID, now),
	}
}

// AddUnits applies a deposit and returns the monetary value added.
func (a *SavingsAccount) AddUnits(units int64, unitPrice decimal.Decimal, operatorID string, now time.Time) decimal.Decimal {
	value := unitPrice.Mul(decimal.NewFromInt(units))
	a.UnitCount += units
	a.Balance = a.Balance.Add(value)
	a.TotalContributed = a.TotalContributed.Add(value)
	a.touch(operatorID, now)
	return value
}

// Debit removes amount from the balance. Callers check collateral first.
func (a *SavingsAccount) Debit(amount decimal.Decimal, operatorID string, now time.Time) {
	a.Balance = a.Balance.Sub(amount)
	a.touch(operatorID, now)
}

// Credit adds amount to the balance.
func (a *SavingsAccount) Credit(amount decimal.Decimal, operatorID string, now time.Time) {
	a.Balance = a.Balance.Add(amount)
	a.touch(operatorID, now)
}
