package dto

import "github.com/SscSPs/coop_savings_ledger/internal/core/domain"

// ListHistoryParams defines query parameters for listing history.
type ListHistoryParams struct {
	MemberID string `form:"memberId" binding:"required"`
	Ledger   string `form:"ledger" binding:"omitempty,oneof=SAVINGS LOAN REPAYMENT"`
	Limit    int    `form:"limit,default=20" binding:"gte=0"`
	// NextToken continues a previous listing.
	NextToken string `form:"nextToken"`
}

// ToFilter converts the query parameters into a storage filter. The cursor is
// decoded by the caller.
func (p ListHistoryParams) ToFilter() domain.HistoryFilter {
	return domain.HistoryFilter{
		MemberID: p.MemberID,
		Ledger:   domain.LedgerKind(p.Ledger),
		Limit:    p.Limit,
	}.Normalize()
}

// ListHistoryResponse wraps a page of history entries.
type ListHistoryResponse struct {
	Entries   []domain.HistoryEntry `json:"entries"`
	Count     int                   `json:"count"`
	NextToken *string               `json:"nextToken,omitempty"`
}
