package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentPolicy controls whether repayments by the same payer on the same
// loan accumulate into one record or produce a record per payment.
type RepaymentPolicy string

const (
	RepaymentAccumulate RepaymentPolicy = "accumulate"
	RepaymentPerPayment RepaymentPolicy = "per_payment"
)

// Valid reports whether p is a known policy.
func (p RepaymentPolicy) Valid() bool {
	return p == RepaymentAccumulate || p == RepaymentPerPayment
}

// RepaymentRecord captures repayments applied to a loan by one payer.
type RepaymentRecord struct {
	RepaymentID          string          `json:"repaymentID"`
	LoanID               string          `json:"loanID"`
	MemberID             string          `json:"memberID"`
	AmountApplied        decimal.Decimal `json:"amountApplied"`
	BalanceAfter         decimal.Decimal `json:"balanceAfter"` // loan outstanding after the payment
	AccountBalanceBefore decimal.Decimal `json:"accountBalanceBefore"`
	AccountBalanceAfter  decimal.Decimal `json:"accountBalanceAfter"`
	TotalRepaid          decimal.Decimal `json:"totalRepaid"` // lifetime, never reset
	ProcessedBy          string          `json:"processedBy"`
	AuditFields
}

// NewRepaymentRecord starts a record for a single payment.
func NewRepaymentRecord(repaymentID, loanID, memberID string, amount, loanBalanceAfter, accountBefore, accountAfter decimal.Decimal, operatorID string, now time.Time) RepaymentRecord {
	return RepaymentRecord{
		RepaymentID:          repaymentID,
		LoanID:               loanID,
		MemberID:             memberID,
		AmountApplied:        amount,
		BalanceAfter:         loanBalanceAfter,
		AccountBalanceBefore: accountBefore,
		AccountBalanceAfter:  accountAfter,
		TotalRepaid:          amount,
		ProcessedBy:          operatorID,
		AuditFields:          newAuditFields(operatorID, now),
	}
}

// Accumulate folds another payment into an existing record. When the loan is
// settled the in-progress figures are reset so a paid-off record reads zero.
func (r *RepaymentRecord) Accumulate(amount, loanBalanceAfter, accountBefore, accountAfter decimal.Decimal, operatorID string, now time.Time) {
	if loanBalanceAfter.IsZero() {
		r.AmountApplied = decimal.Zero
		r.BalanceAfter = decimal.Zero
	} else {
		r.AmountApplied = r.AmountApplied.Add(amount)
		r.BalanceAfter = loanBalanceAfter
	}
	r.AccountBalanceBefore = accountBefore
	r.AccountBalanceAfter = accountAfter
	r.TotalRepaid = r.TotalRepaid.Add(amount)
	r.ProcessedBy = operatorID
	r.touch(operatorID, now)
}
