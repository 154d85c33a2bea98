package models

import "github.com/shopspring/decimal"

// Repayment is a row of repayments.
type Repayment struct {
	RepaymentID          string          `db:"repayment_id"`
	LoanID               string          `db:"loan_id"`
	MemberID             string          `db:"member_id"`
	AmountApplied        decimal.Decimal `db:"amount_applied"`
	BalanceAfter         decimal.Decimal `db:"balance_after"`
	AccountBalanceBefore decimal.Decimal `db:"account_balance_before"`
	AccountBalanceAfter  decimal.Decimal `db:"account_balance_after"`
	TotalRepaid          decimal.Decimal `db:"total_repaid"`
	ProcessedBy          string          `db:"processed_by"`
	AuditFields
}
