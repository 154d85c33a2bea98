// Package memory is a process-local storage driver. Transactions are
// serialized on one mutex and run against a copy of the state that replaces
// the live state only when the unit of work succeeds.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_ledger/internal/core/ports/repositories"
)

type loanKey struct {
	accountID string
	memberID  string
}

type state struct {
	savings    map[string]domain.SavingsAccount // by account ID
	byMember   map[string]string                // member ID -> account ID
	loans      map[string]domain.Loan
	loanByPair map[loanKey]string
	repayments map[string]domain.RepaymentRecord
	history    []domain.HistoryEntry
}

func newState() *state {
	return &state{
		savings:    make(map[string]domain.SavingsAccount),
		byMember:   make(map[string]string),
		loans:      make(map[string]domain.Loan),
		loanByPair: make(map[loanKey]string),
		repayments: make(map[string]domain.RepaymentRecord),
	}
}

func (s *state) clone() *state {
	c := &state{
		savings:    make(map[string]domain.SavingsAccount, len(s.savings)),
		byMember:   make(map[string]string, len(s.byMember)),
		loans:      make(map[string]domain.Loan, len(s.loans)),
		loanByPair: make(map[loanKey]string, len(s.loanByPair)),
		repayments: make(map[string]domain.RepaymentRecord, len(s.repayments)),
		history:    make([]domain.HistoryEntry, len(s.history)),
	}
	for k, v := range s.savings {
		c.savings[k] = v
	}
	for k, v := range s.byMember {
		c.byMember[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.loanByPair {
		c.loanByPair[k] = v
	}
	for k, v := range s.repayments {
		c.repayments[k] = v
	}
	copy(c.history, s.history)
	return c
}

// Store holds the whole ledger in memory.
type Store struct {
	mu      sync.Mutex
	st      *state
	members map[string]domain.Member
}

// NewStore creates an empty store whose member directory holds members.
func NewStore(members ...domain.Member) *Store {
	dir := make(map[string]domain.Member, len(members))
	for _, m := range members {
		dir[m.MemberID] = m
	}
	return &Store{st: newState(), members: dir}
}

// RunInTx implements repositories.TxRunner.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.st.clone()
	if err := fn(ctx, txRepos(work)); err != nil {
		return err
	}
	s.st = work
	return nil
}

func txRepos(st *state) portsrepo.TxRepos {
	return portsrepo.TxRepos{
		Savings:    savingsRepo{st},
		Loans:      loanRepo{st},
		Repayments: repaymentRepo{st},
		History:    historyRepo{st},
	}
}

// view runs fn against the committed state.
func (s *Store) view(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// NewRepositoryProvider exposes the store through the repository ports.
// The member directory is only wired when it has entries.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	provider := portsrepo.RepositoryProvider{
		Tx:            store,
		SavingsRepo:   committedSavings{store},
		LoanRepo:      committedLoans{store},
		RepaymentRepo: committedRepayments{store},
		HistoryRepo:   committedHistory{store},
	}
	if len(store.members) > 0 {
		provider.MemberRepo = memberDirectory{store}
	}
	return provider
}

// --- savings ---

type savingsRepo struct{ st *state }

func (r savingsRepo) FindByMemberID(_ context.Context, memberID string) (*domain.SavingsAccount, error) {
	id, ok := r.st.byMember[memberID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	acc := r.st.savings[id]
	return &acc, nil
}

func (r savingsRepo) FindByMemberIDForUpdate(ctx context.Context, memberID string) (*domain.SavingsAccount, error) {
	return r.FindByMemberID(ctx, memberID)
}

func (r savingsRepo) FindByIDForUpdate(_ context.Context, accountID string) (*domain.SavingsAccount, error) {
	acc, ok := r.st.savings[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (r savingsRepo) Insert(_ context.Context, acc *domain.SavingsAccount) error {
	if _, exists := r.st.byMember[acc.MemberID]; exists {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageConflict, apperrors.ErrDuplicateMember)
	}
	acc.Version = 1
	r.st.savings[acc.AccountID] = *acc
	r.st.byMember[acc.MemberID] = acc.AccountID
	return nil
}

func (r savingsRepo) Update(_ context.Context, acc *domain.SavingsAccount) error {
	current, ok := r.st.savings[acc.AccountID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	if current.Version != acc.Version {
		return fmt.Errorf("%w: savings account %s", apperrors.ErrStorageConflict, acc.AccountID)
	}
	acc.Version++
	r.st.savings[acc.AccountID] = *acc
	return nil
}

// --- loans ---

type loanRepo struct{ st *state }

func (r loanRepo) FindByID(_ context.Context, loanID string) (*domain.Loan, error) {
	loan, ok := r.st.loans[loanID]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	return &loan, nil
}

func (r loanRepo) FindByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.FindByID(ctx, loanID)
}

func (r loanRepo) FindByAccountAndMemberForUpdate(ctx context.Context, accountID, memberID string) (*domain.Loan, error) {
	id, ok := r.st.loanByPair[loanKey{accountID, memberID}]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	return r.FindByID(ctx, id)
}

func (r loanRepo) ListByAccountForUpdate(_ context.Context, accountID string) ([]domain.Loan, error) {
	var loans []domain.Loan
	for _, l := range r.st.loans {
		if l.AccountID == accountID {
			loans = append(loans, l)
		}
	}
	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].CreatedAt.Equal(loans[j].CreatedAt) {
			return loans[i].CreatedAt.Before(loans[j].CreatedAt)
		}
		return loans[i].LoanID < loans[j].LoanID
	})
	return loans, nil
}

func (r loanRepo) Insert(_ context.Context, loan *domain.Loan) error {
	key := loanKey{loan.AccountID, loan.MemberID}
	if _, exists := r.st.loanByPair[key]; exists {
		return fmt.Errorf("%w: loan for account %s and member %s already exists", apperrors.ErrStorageConflict, loan.AccountID, loan.MemberID)
	}
	loan.Version = 1
	r.st.loans[loan.LoanID] = *loan
	r.st.loanByPair[key] = loan.LoanID
	return nil
}

func (r loanRepo) Update(_ context.Context, loan *domain.Loan) error {
	current, ok := r.st.loans[loan.LoanID]
	if !ok {
		return apperrors.ErrLoanNotFound
	}
	if current.Version != loan.Version {
		return fmt.Errorf("%w: loan %s", apperrors.ErrStorageConflict, loan.LoanID)
	}
	loan.Version++
	r.st.loans[loan.LoanID] = *loan
	return nil
}

func (r loanRepo) Delete(_ context.Context, loanID string) error {
	loan, ok := r.st.loans[loanID]
	if !ok {
		return apperrors.ErrLoanNotFound
	}
	delete(r.st.loans, loanID)
	delete(r.st.loanByPair, loanKey{loan.AccountID, loan.MemberID})
	return nil
}

// --- repayments ---

type repaymentRepo struct{ st *state }

func (r repaymentRepo) FindByID(_ context.Context, repaymentID string) (*domain.RepaymentRecord, error) {
	rec, ok := r.st.repayments[repaymentID]
	if !ok {
		return nil, apperrors.ErrRepaymentNotFound
	}
	return &rec, nil
}

func (r repaymentRepo) FindByLoanAndMemberForUpdate(_ context.Context, loanID, memberID string) (*domain.RepaymentRecord, error) {
	var latest *domain.RepaymentRecord
	for _, rec := range r.st.repayments {
		if rec.LoanID != loanID || rec.MemberID != memberID {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			rec := rec
			latest = &rec
		}
	}
	if latest == nil {
		return nil, apperrors.ErrRepaymentNotFound
	}
	return latest, nil
}

func (r repaymentRepo) Insert(_ context.Context, rec *domain.RepaymentRecord) error {
	if _, exists := r.st.repayments[rec.RepaymentID]; exists {
		return fmt.Errorf("%w: repayment %s", apperrors.ErrStorageConflict, rec.RepaymentID)
	}
	rec.Version = 1
	r.st.repayments[rec.RepaymentID] = *rec
	return nil
}

func (r repaymentRepo) Update(_ context.Context, rec *domain.RepaymentRecord) error {
	current, ok := r.st.repayments[rec.RepaymentID]
	if !ok {
		return apperrors.ErrRepaymentNotFound
	}
	if current.Version != rec.Version {
		return fmt.Errorf("%w: repayment %s", apperrors.ErrStorageConflict, rec.RepaymentID)
	}
	rec.Version++
	r.st.repayments[rec.RepaymentID] = *rec
	return nil
}

// --- history ---

type historyRepo struct{ st *state }

func (r historyRepo) Append(_ context.Context, entry domain.HistoryEntry) error {
	r.st.history = append(r.st.history, entry)
	return nil
}

func (r historyRepo) List(_ context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	// Limit is taken as given; callers may ask for one row past the page size.
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultHistoryLimit
	}
	out := make([]domain.HistoryEntry, 0, filter.Limit)
	seekingCursor := filter.After != ""
	for i := len(r.st.history) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		e := r.st.history[i]
		if seekingCursor {
			seekingCursor = e.HistoryID != filter.After
			continue
		}
		if e.MemberID != filter.MemberID {
			continue
		}
		if filter.Ledger != "" && e.Ledger != filter.Ledger {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
