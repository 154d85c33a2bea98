package models

import "github.com/shopspring/decimal"

// SavingsAccount is a row of savings_accounts.
type SavingsAccount struct {
	AccountID        string          `db:"account_id"`
	MemberID         string          `db:"member_id"`
	UnitCount        int64           `db:"unit_count"`
	Balance          decimal.Decimal `db:"balance"`
	TotalContributed decimal.Decimal `db:"total_contributed"`
	AuditFields
}
