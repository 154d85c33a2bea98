package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind names the ledger that produced a history entry.
type LedgerKind string

const (
	LedgerSavings   LedgerKind = "SAVINGS"
	LedgerLoan      LedgerKind = "LOAN"
	LedgerRepayment LedgerKind = "REPAYMENT"
)

// Valid reports whether k is a known ledger.
func (k LedgerKind) Valid() bool {
	switch k {
	case LedgerSavings, LedgerLoan, LedgerRepayment:
		return true
	}
	return false
}

// HistoryAction is the kind of mutation a history entry records.
type HistoryAction string

const (
	ActionCreated HistoryAction = "CREATED"
	ActionUpdated HistoryAction = "UPDATED"
)

// HistoryEntry is an immutable audit record of one committed ledger mutation.
type HistoryEntry struct {
	HistoryID            string          `json:"historyID"`
	Ledger               LedgerKind      `json:"ledger"`
	SubjectID            string          `json:"subjectID"` // account, loan or repayment ID
	MemberID             string          `json:"memberID"`
	Action               HistoryAction   `json:"action"`
	Amount               decimal.Decimal `json:"amount"` // money moved by this mutation
	Units                int64           `json:"units"`  // savings deposits only
	AccountBalanceBefore decimal.Decimal `json:"accountBalanceBefore"`
	AccountBalanceAfter  decimal.Decimal `json:"accountBalanceAfter"`
	OutstandingBalance   decimal.Decimal `json:"outstandingBalance"`
	CumulativeDrawn      decimal.Decimal `json:"cumulativeDrawn"`
	CumulativeRepaid     decimal.Decimal `json:"cumulativeRepaid"`
	Note                 string          `json:"note,omitempty"`
	ProcessedBy          string          `json:"processedBy"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// SavingsHistory snapshots a deposit or a refund onto a savings account.
func SavingsHistory(action HistoryAction, acc SavingsAccount, units int64, amount, balanceBefore decimal.Decimal, operatorID string, now time.Time) HistoryEntry {
	return HistoryEntry{
		Ledger:               LedgerSavings,
		SubjectID:            acc.AccountID,
		MemberID:             acc.MemberID,
		Action:               action,
		Amount:               amount,
		Units:                units,
		AccountBalanceBefore: balanceBefore,
		AccountBalanceAfter:  acc.Balance,
		OutstandingBalance:   decimal.Zero,
		CumulativeDrawn:      decimal.Zero,
		CumulativeRepaid:     decimal.Zero,
		ProcessedBy:          operatorID,
		CreatedAt:            now,
	}
}

// LoanHistory snapshots a loan after a draw or an administrative change.
func LoanHistory(action HistoryAction, loan Loan, amount, balanceBefore, balanceAfter decimal.Decimal, operatorID string, now time.Time) HistoryEntry {
	return HistoryEntry{
		Ledger:               LedgerLoan,
		SubjectID:            loan.LoanID,
		MemberID:             loan.MemberID,
		Action:               action,
		Amount:               amount,
		AccountBalanceBefore: balanceBefore,
		AccountBalanceAfter:  balanceAfter,
		OutstandingBalance:   loan.OutstandingBalance,
		CumulativeDrawn:      loan.CumulativeDrawn,
		CumulativeRepaid:     loan.CumulativeRepaid,
		ProcessedBy:          operatorID,
		CreatedAt:            now,
	}
}

// RepaymentHistory snapshots a repayment against its loan.
func RepaymentHistory(action HistoryAction, rec RepaymentRecord, loan Loan, amount, balanceBefore, balanceAfter decimal.Decimal, operatorID string, now time.Time) HistoryEntry {
	return HistoryEntry{
		Ledger:               LedgerRepayment,
		SubjectID:            rec.RepaymentID,
		MemberID:             rec.MemberID,
		Action:               action,
		Amount:               amount,
		AccountBalanceBefore: balanceBefore,
		AccountBalanceAfter:  balanceAfter,
		OutstandingBalance:   loan.OutstandingBalance,
		CumulativeDrawn:      loan.CumulativeDrawn,
		CumulativeRepaid:     loan.CumulativeRepaid,
		ProcessedBy:          operatorID,
		CreatedAt:            now,
	}
}

// DefaultHistoryLimit and MaxHistoryLimit bound history listings.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// HistoryFilter selects history entries for a listing.
type HistoryFilter struct {
	MemberID string
	Ledger   LedgerKind // empty means every ledger
	Limit    int
	// After is a history ID; only entries recorded before it are listed.
	After string
}

// Normalize clamps Limit into range.
func (f HistoryFilter) Normalize() HistoryFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultHistoryLimit
	case f.Limit > MaxHistoryLimit:
		f.Limit = MaxHistoryLimit
	}
	return f
}
