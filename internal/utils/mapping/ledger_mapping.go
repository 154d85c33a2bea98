package mapping

import (
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	"github.com/SscSPs/coop_savings_ledger/internal/models"
)

// ToModelSavingsAccount converts a domain SavingsAccount to a model SavingsAccount
func ToModelSavingsAccount(d domain.SavingsAccount) models.SavingsAccount {
	return models.SavingsAccount{
		AccountID:        d.AccountID,
		MemberID:         d.MemberID,
		UnitCount:        d.UnitCount,
		Balance:          d.Balance,
		TotalContributed: d.TotalContributed,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsAccount converts a model SavingsAccount to a domain SavingsAccount
func ToDomainSavingsAccount(m models.SavingsAccount) domain.SavingsAccount {
	return domain.SavingsAccount{
		AccountID:        m.AccountID,
		MemberID:         m.MemberID,
		UnitCount:        m.UnitCount,
		Balance:          m.Balance,
		TotalContributed: m.TotalContributed,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:              d.LoanID,
		AccountID:           d.AccountID,
		MemberID:            d.MemberID,
		PrincipalAmount:     d.PrincipalAmount,
		OutstandingBalance:  d.OutstandingBalance,
		CumulativeDrawn:     d.CumulativeDrawn,
		CumulativeRepaid:    d.CumulativeRepaid,
		RemainingCollateral: d.RemainingCollateral,
		Status:              string(d.Status),
		IssuerID:            d.IssuerID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:              m.LoanID,
		AccountID:           m.AccountID,
		MemberID:            m.MemberID,
		PrincipalAmount:     m.PrincipalAmount,
		OutstandingBalance:  m.OutstandingBalance,
		CumulativeDrawn:     m.CumulativeDrawn,
		CumulativeRepaid:    m.CumulativeRepaid,
		RemainingCollateral: m.RemainingCollateral,
		Status:              domain.LoanStatus(m.Status),
		IssuerID:            m.IssuerID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoans converts a slice of model Loans
func ToDomainLoans(ms []models.Loan) []domain.Loan {
	out := make([]domain.Loan, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLoan(m)
	}
	return out
}

// ToModelRepayment converts a domain RepaymentRecord to a model Repayment
func ToModelRepayment(d domain.RepaymentRecord) models.Repayment {
	return models.Repayment{
		RepaymentID:          d.RepaymentID,
		LoanID:               d.LoanID,
		MemberID:             d.MemberID,
		AmountApplied:        d.AmountApplied,
		BalanceAfter:         d.BalanceAfter,
		AccountBalanceBefore: d.AccountBalanceBefore,
		AccountBalanceAfter:  d.AccountBalanceAfter,
		TotalRepaid:          d.TotalRepaid,
		ProcessedBy:          d.ProcessedBy,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRepayment converts a model Repayment to a domain RepaymentRecord
func ToDomainRepayment(m models.Repayment) domain.RepaymentRecord {
	return domain.RepaymentRecord{
		RepaymentID:          m.RepaymentID,
		LoanID:               m.LoanID,
		MemberID:             m.MemberID,
		AmountApplied:        m.AmountApplied,
		BalanceAfter:         m.BalanceAfter,
		AccountBalanceBefore: m.AccountBalanceBefore,
		AccountBalanceAfter:  m.AccountBalanceAfter,
		TotalRepaid:          m.TotalRepaid,
		ProcessedBy:          m.ProcessedBy,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelHistoryEntry converts a domain HistoryEntry to a model HistoryEntry
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		HistoryID:            d.HistoryID,
		Ledger:               string(d.Ledger),
		SubjectID:            d.SubjectID,
		MemberID:             d.MemberID,
		Action:               string(d.Action),
		Amount:               d.Amount,
		Units:                d.Units,
		AccountBalanceBefore: d.AccountBalanceBefore,
		AccountBalanceAfter:  d.AccountBalanceAfter,
		OutstandingBalance:   d.OutstandingBalance,
		CumulativeDrawn:      d.CumulativeDrawn,
		CumulativeRepaid:     d.CumulativeRepaid,
		Note:                 d.Note,
		ProcessedBy:          d.ProcessedBy,
		CreatedAt:            d.CreatedAt,
	}
}

// ToDomainHistoryEntries converts a slice of model HistoryEntries
func ToDomainHistoryEntries(ms []models.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(ms))
	for i, m := range ms {
		out[i] = domain.HistoryEntry{
			HistoryID:            m.HistoryID,
			Ledger:               domain.LedgerKind(m.Ledger),
			SubjectID:            m.SubjectID,
			MemberID:             m.MemberID,
			Action:               domain.HistoryAction(m.Action),
			Amount:               m.Amount,
			Units:                m.Units,
			AccountBalanceBefore: m.AccountBalanceBefore,
			AccountBalanceAfter:  m.AccountBalanceAfter,
			OutstandingBalance:   m.OutstandingBalance,
			CumulativeDrawn:      m.CumulativeDrawn,
			CumulativeRepaid:     m.CumulativeRepaid,
			Note:                 m.Note,
			ProcessedBy:          m.ProcessedBy,
			CreatedAt:            m.CreatedAt,
		}
	}
	return out
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID: m.MemberID,
		Name:     m.Name,
		Role:     domain.Role(m.Role),
		Status:   domain.MemberStatus(m.Status),
	}
}
