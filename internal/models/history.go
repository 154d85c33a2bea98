package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry is a row of ledger_history. Rows are never updated.
type HistoryEntry struct {
	HistoryID            string          `db:"history_id"`
	Ledger               string          `db:"ledger"`
	SubjectID            string          `db:"subject_id"`
	MemberID             string          `db:"member_id"`
	Action               string          `db:"action"`
	Amount               decimal.Decimal `db:"amount"`
	Units                int64           `db:"units"`
	AccountBalanceBefore decimal.Decimal `db:"account_balance_before"`
	AccountBalanceAfter  decimal.Decimal `db:"account_balance_after"`
	OutstandingBalance   decimal.Decimal `db:"outstanding_balance"`
	CumulativeDrawn      decimal.Decimal `db:"cumulative_drawn"`
	CumulativeRepaid     decimal.Decimal `db:"cumulative_repaid"`
	Note                 string          `db:"note"`
	ProcessedBy          string          `db:"processed_by"`
	CreatedAt            time.Time       `db:"created_at"`
}
