package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LoanStatus indicates whether a loan still has principal outstanding.
type LoanStatus string

const (
	LoanActive LoanStatus = "ACTIVE"
	LoanPaid   LoanStatus = "PAID"
)

// Loan is the running loan position of a member against one savings account.
// There is at most one loan per (AccountID, MemberID) pair; further draws top it up.
//
// OutstandingBalance always equals CumulativeDrawn - CumulativeRepaid.
type Loan struct {
	LoanID              string          `json:"loanID"`
	AccountID           string          `json:"accountID"`
	MemberID            string          `json:"memberID"`
	PrincipalAmount     decimal.Decimal `json:"principalAmount"` // most recent draw, or the admin-set principal
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	CumulativeDrawn     decimal.Decimal `json:"cumulativeDrawn"`
	CumulativeRepaid    decimal.Decimal `json:"cumulativeRepaid"`
	RemainingCollateral decimal.Decimal `json:"remainingCollateral"` // savings balance snapshot after the last movement
	Status              LoanStatus      `json:"status"`
	IssuerID            string          `json:"issuerID"`
	AuditFields
}

// NewLoan opens a loan for a first draw. balanceBefore is the savings balance
// prior to deducting amount.
func NewLoan(loanID, accountID, memberID string, amount, balanceBefore decimal.Decimal, issuerID string, now time.Time) Loan {
	return Loan{
		LoanID:              loanID,
		AccountID:           accountID,
		MemberID:            memberID,
		PrincipalAmount:     amount,
		OutstandingBalance:  amount,
		CumulativeDrawn:     amount,
		CumulativeRepaid:    decimal.Zero,
		RemainingCollateral: balanceBefore.Sub(amount),
		Status:              LoanActive,
		IssuerID:            issuerID,
		AuditFields:         newAuditFields(issuerID, now),
	}
}

// Draw tops up an existing loan. Only this draw is deducted from balanceBefore.
func (l *Loan) Draw(amount, balanceBefore decimal.Decimal, operatorID string, now time.Time) {
	l.PrincipalAmount = amount
	l.CumulativeDrawn = l.CumulativeDrawn.Add(amount)
	l.OutstandingBalance = l.OutstandingBalance.Add(amount)
	l.RemainingCollateral = balanceBefore.Sub(amount)
	l.Status = LoanActive
	l.IssuerID = operatorID
	l.touch(operatorID, now)
}

// Repay applies a payment. It leaves the loan untouched and returns
// ErrOverRepayment when amount exceeds the outstanding balance.
func (l *Loan) Repay(amount decimal.Decimal, operatorID string, now time.Time) error {
	remaining := l.OutstandingBalance.Sub(amount)
	if remaining.IsNegative() {
		return fmt.Errorf("%w: outstanding %s, repayment %s", apperrors.ErrOverRepayment, l.OutstandingBalance, amount)
	}
	l.OutstandingBalance = remaining
	l.CumulativeRepaid = l.CumulativeRepaid.Add(amount)
	l.RemainingCollateral = l.RemainingCollateral.Add(amount)
	if remaining.IsZero() {
		l.Status = LoanPaid
	}
	l.touch(operatorID, now)
	return nil
}

// Reprice is the administrative override: it moves the principal to
// newPrincipal and shifts drawn and outstanding by the same delta without
// looking at collateral. Outstanding may not go negative.
func (l *Loan) Reprice(newPrincipal decimal.Decimal, operatorID string, now time.Time) error {
	delta := newPrincipal.Sub(l.PrincipalAmount)
	outstanding := l.OutstandingBalance.Add(delta)
	if outstanding.IsNegative() {
		return fmt.Errorf("%w: new principal %s would leave outstanding at %s", apperrors.ErrInvalidAmount, newPrincipal, outstanding)
	}
	l.PrincipalAmount = newPrincipal
	l.CumulativeDrawn = l.CumulativeDrawn.Add(delta)
	l.OutstandingBalance = outstanding
	if outstanding.IsZero() {
		l.Status = LoanPaid
	} else {
		l.Status = LoanActive
	}
	l.touch(operatorID, now)
	return nil
}

// RefreshCollateral records the latest savings balance backing the loan.
func (l *Loan) RefreshCollateral(balance decimal.Decimal, now time.Time) {
	l.RemainingCollateral = balance
	l.LastUpdatedAt = now
}

// IsBalanced reports whether the outstanding/drawn/repaid invariant holds.
func (l Loan) IsBalanced() bool {
	return !l.OutstandingBalance.IsNegative() &&
		l.OutstandingBalance.Equal(l.CumulativeDrawn.Sub(l.CumulativeRepaid))
}
