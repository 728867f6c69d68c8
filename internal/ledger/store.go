// Package ledger owns the snapshot aggregate and every mutation on it. All
// writes go through Store methods, which validate, update in-memory state,
// and persist through the SnapshotStore port before returning. Reads hand
// out recomputed, copied projections only.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finanspano/internal/core"
	applog "finanspano/internal/log"
)

// DefaultAccountName is the account the bootstrap rule creates when a
// snapshot has no accounts at all.
const DefaultAccountName = "Varsayılan Hesap"

// Synthetic opening-balance rows keep their historical description and
// category so old exports stay comparable.
const (
	openingDescription = "Başlangıç Bakiyesi"
	openingCategory    = "Initial"
)

// Store is the single owner of the ledger snapshot. Methods are safe for
// concurrent use; one mutex serializes mutations so the one-logical-writer
// model holds even under net/http's per-request goroutines.
type Store struct {
	mu     sync.Mutex
	snap   core.Snapshot
	port   SnapshotStore
	logger *applog.Logger

	lastID   int64
	degraded bool
	now      func() time.Time
}

// New creates a Store persisting through port. The snapshot is empty until
// Load runs.
func New(port SnapshotStore, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{
		port:   port,
		logger: logger.WithComponent(applog.ComponentLedger),
		now:    time.Now,
	}
}

// Load hydrates the snapshot from the port and applies the bootstrap rules:
// an empty ledger gets one default account, a stale active-account reference
// falls back to the first account, and an empty category registry gets the
// default lists.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.port.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if ok {
		s.snap = snap
	}

	if len(s.snap.Categories.Income) == 0 && len(s.snap.Categories.Expense) == 0 {
		s.snap.Categories = core.DefaultCategories()
	}
	if len(s.snap.Accounts) == 0 {
		acc := core.Account{ID: newAccountID(), Name: DefaultAccountName}
		s.snap.Accounts = append(s.snap.Accounts, acc)
		s.snap.ActiveAccountID = acc.ID
		s.logger.InfoContext(ctx, "Bootstrapped default account",
			applog.FieldOperation, applog.OpBootstrap,
			applog.FieldAccountID, acc.ID)
	} else if s.findAccount(s.snap.ActiveAccountID) < 0 {
		s.snap.ActiveAccountID = s.snap.Accounts[0].ID
	}

	for _, t := range s.snap.Transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	s.save(ctx)
	s.logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldCount, len(s.snap.Transactions))
	return nil
}

// AddTransaction validates the draft, normalizes the amount sign per type,
// assigns a fresh id and appends the row. Storage order is insertion order.
func (s *Store) AddTransaction(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.buildTransaction(draft)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ID = s.nextID()
	s.snap.Transactions = append(s.snap.Transactions, t)
	s.save(ctx)
	s.logger.InfoContext(ctx, "Transaction added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTransactionID, t.ID,
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldCategory, t.Category)
	return t, nil
}

// UpdateTransaction replaces the row matching id with a freshly validated
// one built from the draft. Position in the log and the id are preserved.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, draft core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransaction(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("%w: transaction %d", core.ErrNotFound, id)
	}
	t, err := s.buildTransaction(draft)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ID = id
	s.snap.Transactions[i] = t
	s.save(ctx)
	s.logger.InfoContext(ctx, "Transaction updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldTransactionID, id)
	return t, nil
}

// DeleteTransaction removes the row matching id.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransaction(id)
	if i < 0 {
		return fmt.Errorf("%w: transaction %d", core.ErrNotFound, id)
	}
	s.snap.Transactions = slices.Delete(s.snap.Transactions, i, i+1)
	s.save(ctx)
	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTransactionID, id)
	return nil
}

// AddAccount creates an account. Balance always starts at zero; a nonzero
// opening balance becomes a synthetic initial-type transaction dated today,
// so the balance stays fully derived from the log.
func (s *Store) AddAccount(ctx context.Context, name string, opening core.Money) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return core.Account{}, fmt.Errorf("%w: empty account name", core.ErrValidation)
	}
	if opening.Cents < 0 {
		return core.Account{}, fmt.Errorf("%w: opening balance cannot be negative", core.ErrValidation)
	}

	acc := core.Account{ID: newAccountID(), Name: name}
	s.snap.Accounts = append(s.snap.Accounts, acc)

	if opening.Cents != 0 {
		s.snap.Transactions = append(s.snap.Transactions, core.Transaction{
			ID:          s.nextID(),
			Description: openingDescription,
			Amount:      opening,
			Type:        core.Initial,
			Category:    openingCategory,
			AccountID:   acc.ID,
			Date:        core.Date{Time: s.now().UTC()},
		})
	}

	s.save(ctx)
	s.logger.InfoContext(ctx, "Account added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldAccountID, acc.ID,
		applog.FieldAccountName, acc.Name,
		applog.FieldAmountCents, opening.Cents)
	return acc, nil
}

// DeleteAccount removes the account and cascades to every transaction that
// references it. The last remaining account cannot be deleted. When the
// active account goes away, the first remaining one becomes active.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findAccount(id)
	if i < 0 {
		return fmt.Errorf("%w: account %s", core.ErrNotFound, id)
	}
	if len(s.snap.Accounts) <= 1 {
		return fmt.Errorf("%w: cannot delete the last account", core.ErrValidation)
	}

	s.snap.Accounts = slices.Delete(s.snap.Accounts, i, i+1)
	kept := s.snap.Transactions[:0]
	for _, t := range s.snap.Transactions {
		if t.AccountID != id {
			kept = append(kept, t)
		}
	}
	removed := len(s.snap.Transactions) - len(kept)
	s.snap.Transactions = kept

	if s.snap.ActiveAccountID == id {
		s.snap.ActiveAccountID = s.snap.Accounts[0].ID
	}

	s.save(ctx)
	s.logger.InfoContext(ctx, "Account deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldAccountID, id,
		applog.FieldCount, removed)
	return nil
}

// SetActiveAccount switches the active account.
func (s *Store) SetActiveAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(id) < 0 {
		return fmt.Errorf("%w: unknown account %s", core.ErrValidation, id)
	}
	s.snap.ActiveAccountID = id
	s.save(ctx)
	return nil
}

// AddCategory appends a name to the registry list for kind. Names are
// unique per list; order is insertion order.
func (s *Store) AddCategory(ctx context.Context, kind core.TransactionType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty category name", core.ErrValidation)
	}
	list, err := s.snap.Categories.For(kind)
	if err != nil {
		return err
	}
	if slices.Contains(list, name) {
		return fmt.Errorf("%w: category %q already exists", core.ErrValidation, name)
	}
	switch kind {
	case core.Income:
		s.snap.Categories.Income = append(s.snap.Categories.Income, name)
	case core.Expense:
		s.snap.Categories.Expense = append(s.snap.Categories.Expense, name)
	}
	s.save(ctx)
	s.logger.InfoContext(ctx, "Category added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldCategory, name,
		applog.FieldType, string(kind))
	return nil
}

// RemoveCategory deletes a name from the registry. Transactions already
// tagged with it keep the name; a dangling category reference stays valid
// so the historical record never rewrites itself.
func (s *Store) RemoveCategory(ctx context.Context, kind core.TransactionType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.snap.Categories.For(kind)
	if err != nil {
		return err
	}
	i := slices.Index(list, name)
	if i < 0 {
		return nil
	}
	switch kind {
	case core.Income:
		s.snap.Categories.Income = slices.Delete(s.snap.Categories.Income, i, i+1)
	case core.Expense:
		s.snap.Categories.Expense = slices.Delete(s.snap.Categories.Expense, i, i+1)
	}
	s.save(ctx)
	return nil
}

// Reset wipes the ledger and re-runs the bootstrap rule.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := core.Account{ID: newAccountID(), Name: DefaultAccountName}
	s.snap = core.Snapshot{
		Accounts:        []core.Account{acc},
		Categories:      core.DefaultCategories(),
		ActiveAccountID: acc.ID,
	}
	s.save(ctx)
	s.logger.InfoContext(ctx, "Ledger reset", applog.FieldOperation, applog.OpDelete)
	return nil
}

// Accounts returns every account with a freshly recomputed balance.
func (s *Store) Accounts() []core.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RecomputeBalances(s.snap.Accounts, s.snap.Transactions)
}

// ActiveAccount returns the active account with a recomputed balance.
func (s *Store) ActiveAccount() (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range RecomputeBalances(s.snap.Accounts, s.snap.Transactions) {
		if a.ID == s.snap.ActiveAccountID {
			return a, true
		}
	}
	return core.Account{}, false
}

// ActiveAccountID returns the id of the active account.
func (s *Store) ActiveAccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.ActiveAccountID
}

// Transactions returns a copy of the full log in storage order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.snap.Transactions...)
}

// FilteredTransactions applies f and returns the survivors newest first.
func (s *Store) FilteredTransactions(f Filter) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewestFirst(f.Matching(s.snap.Transactions))
}

// RecentTransactions returns up to n of the active account's newest rows.
func (s *Store) RecentTransactions(n int) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Recent(s.snap.Transactions, s.snap.ActiveAccountID, n)
}

// Categories returns a copy of the registry.
func (s *Store) Categories() core.Categories {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Categories.Clone()
}

// buildTransaction validates a draft against the current snapshot and turns
// it into a row. The caller assigns the id: a fresh one on add, the
// preserved one on update. Caller holds the lock.
func (s *Store) buildTransaction(draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if s.findAccount(draft.AccountID) < 0 {
		return core.Transaction{}, fmt.Errorf("%w: unknown account %s", core.ErrValidation, draft.AccountID)
	}
	return core.Transaction{
		Description: strings.TrimSpace(draft.Description),
		Amount:      draft.SignedAmount(),
		Type:        draft.Type,
		Category:    draft.Category,
		AccountID:   draft.AccountID,
		Date:        draft.Date,
	}, nil
}

// nextID derives ids from the wall clock, bumped monotonically so sequential
// calls inside the same millisecond cannot collide.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) findTransaction(id int64) int {
	return slices.IndexFunc(s.snap.Transactions, func(t core.Transaction) bool { return t.ID == id })
}

func (s *Store) findAccount(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.snap.Accounts, func(a core.Account) bool { return a.ID == id })
}

// save persists the snapshot synchronously. Balances are stripped first;
// they are derived state and must never be read back as authoritative.
// A failing medium degrades the session to in-memory operation instead of
// failing the mutation.
func (s *Store) save(ctx context.Context) {
	snap := s.snap
	snap.Accounts = make([]core.Account, len(s.snap.Accounts))
	for i, a := range s.snap.Accounts {
		a.Balance = core.Money{}
		snap.Accounts[i] = a
	}

	if err := s.port.Save(ctx, snap); err != nil {
		if !s.degraded {
			s.degraded = true
			s.logger.WarnContext(ctx, "Persistence unavailable, continuing in memory",
				applog.FieldOperation, applog.OpSave,
				applog.FieldError, err.Error())
		}
		return
	}
	if s.degraded {
		s.degraded = false
		s.logger.InfoContext(ctx, "Persistence restored", applog.FieldOperation, applog.OpSave)
	}
}

func newAccountID() string {
	return "acc_" + uuid.NewString()
}
