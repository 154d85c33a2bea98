package models

import "github.com/shopspring/decimal"

// Loan is a row of loans.
type Loan struct {
	LoanID              string          `db:"loan_id"`
	AccountID           string          `db:"account_id"`
	MemberID            string          `db:"member_id"`
	PrincipalAmount     decimal.Decimal `db:"principal_amount"`
	OutstandingBalance  decimal.Decimal `db:"outstanding_balance"`
	CumulativeDrawn     decimal.Decimal `db:"cumulative_drawn"`
	CumulativeRepaid    decimal.Decimal `db:"cumulative_repaid"`
	RemainingCollateral decimal.Decimal `db:"remaining_collateral"`
	Status              string          `db:"status"`
	IssuerID            string          `db:"issuer_id"`
	AuditFields
}
