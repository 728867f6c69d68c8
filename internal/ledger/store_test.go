package ledger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"finanspano/internal/core"
	applog "finanspano/internal/log"
	"finanspano/internal/storage"
)

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelError, Component: applog.ComponentLedger})
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	port := storage.NewMemoryStore()
	s := New(port, quietLogger())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, port
}

func draft(accountID string) core.Draft {
	return core.Draft{
		Description: "market alışverişi",
		Amount:      core.Money{Cents: 25000},
		Type:        core.Expense,
		Category:    "Market",
		AccountID:   accountID,
		Date:        core.NewDate(2024, 1, 5),
	}
}

func TestBootstrapEmptySnapshot(t *testing.T) {
	s, port := newTestStore(t)

	accounts := s.Accounts()
	if len(accounts) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(accounts))
	}
	if accounts[0].Name != DefaultAccountName {
		t.Fatalf("unexpected account name %q", accounts[0].Name)
	}
	if accounts[0].Balance.Cents != 0 {
		t.Fatalf("expected zero balance, got %d", accounts[0].Balance.Cents)
	}
	if s.ActiveAccountID() != accounts[0].ID {
		t.Fatal("default account must be active")
	}
	if cats := s.Categories(); len(cats.Income) == 0 || len(cats.Expense) == 0 {
		t.Fatal("expected default category registry")
	}

	// Bootstrap state is persisted immediately.
	snap, ok, err := port.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected persisted snapshot, ok=%v err=%v", ok, err)
	}
	if len(snap.Accounts) != 1 || snap.ActiveAccountID != accounts[0].ID {
		t.Fatalf("unexpected persisted snapshot %+v", snap)
	}
}

func TestLoadFallsBackToFirstAccountWhenActiveStale(t *testing.T) {
	port := storage.NewMemoryStore()
	seed := core.Snapshot{
		Accounts:        []core.Account{{ID: "acc_1", Name: "Nakit"}, {ID: "acc_2", Name: "Banka"}},
		Categories:      core.DefaultCategories(),
		ActiveAccountID: "acc_gone",
	}
	if err := port.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := New(port, quietLogger())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.ActiveAccountID() != "acc_1" {
		t.Fatalf("expected fallback to first account, got %s", s.ActiveAccountID())
	}
}

func TestAddTransactionNormalizesSign(t *testing.T) {
	s, port := newTestStore(t)
	account := s.Accounts()[0]

	tx, err := s.AddTransaction(context.Background(), draft(account.ID))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tx.Amount.Cents != -25000 {
		t.Fatalf("expense must store a negative amount, got %d", tx.Amount.Cents)
	}
	if !tx.SignValid() {
		t.Fatal("sign invariant violated")
	}

	d := draft(account.ID)
	d.Type = core.Income
	tx2, err := s.AddTransaction(context.Background(), d)
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	if tx2.Amount.Cents != 25000 || !tx2.SignValid() {
		t.Fatalf("income must store a positive amount, got %d", tx2.Amount.Cents)
	}

	// Persisted snapshot never stores derived balances.
	snap, _, _ := port.Load(context.Background())
	for _, a := range snap.Accounts {
		if a.Balance.Cents != 0 {
			t.Fatalf("persisted balance must be zero, got %d", a.Balance.Cents)
		}
	}
}

func TestAddTransactionValidation(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	cases := []func(*core.Draft){
		func(d *core.Draft) { d.Description = "" },
		func(d *core.Draft) { d.Amount = core.Money{} },
		func(d *core.Draft) { d.Category = "" },
		func(d *core.Draft) { d.AccountID = "acc_yok" },
		func(d *core.Draft) { d.Date = core.Date{} },
	}
	for i, mutate := range cases {
		d := draft(account.ID)
		mutate(&d)
		if _, err := s.AddTransaction(context.Background(), d); !errors.Is(err, core.ErrValidation) {
			t.Fatalf("case %d expected ErrValidation, got %v", i, err)
		}
	}
	if got := len(s.Transactions()); got != 0 {
		t.Fatalf("rejected drafts must not change state, have %d rows", got)
	}
}

func TestUpdateTransaction(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	first, _ := s.AddTransaction(context.Background(), draft(account.ID))
	second, _ := s.AddTransaction(context.Background(), draft(account.ID))

	d := draft(account.ID)
	d.Description = "kira ödemesi"
	d.Amount = core.Money{Cents: 1500000}
	updated, err := s.UpdateTransaction(context.Background(), first.ID, d)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != first.ID {
		t.Fatal("update must preserve the id")
	}
	if updated.Amount.Cents != -1500000 {
		t.Fatalf("update must renormalize the sign, got %d", updated.Amount.Cents)
	}

	// Position in storage order is preserved.
	rows := s.Transactions()
	if rows[0].ID != first.ID || rows[1].ID != second.ID {
		t.Fatal("update must not reorder the log")
	}

	if _, err := s.UpdateTransaction(context.Background(), 999, d); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	tx, _ := s.AddTransaction(context.Background(), draft(account.ID))
	if err := s.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("expected empty log")
	}
	if err := s.DeleteTransaction(context.Background(), tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddAccountWithOpeningBalance(t *testing.T) {
	s, _ := newTestStore(t)

	acc, err := s.AddAccount(context.Background(), "Banka", core.Money{Cents: 500000})
	if err != nil {
		t.Fatalf("add account: %v", err)
	}

	rows := Filter{Account: acc.ID}.Matching(s.Transactions())
	if len(rows) != 1 {
		t.Fatalf("expected one synthetic opening row, got %d", len(rows))
	}
	opening := rows[0]
	if opening.Type != core.Initial || opening.Amount.Cents != 500000 {
		t.Fatalf("unexpected opening row %+v", opening)
	}
	if opening.Description != openingDescription || opening.Category != openingCategory {
		t.Fatalf("unexpected opening labels %q/%q", opening.Description, opening.Category)
	}

	for _, a := range s.Accounts() {
		if a.ID == acc.ID && a.Balance.Cents != 500000 {
			t.Fatalf("expected derived balance 500000, got %d", a.Balance.Cents)
		}
	}
}

func TestAddAccountValidation(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.AddAccount(context.Background(), "  ", core.Money{}); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := s.AddAccount(context.Background(), "Banka", core.Money{Cents: -100}); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative opening, got %v", err)
	}

	// Zero opening balance creates no synthetic row.
	if _, err := s.AddAccount(context.Background(), "Nakit", core.Money{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("zero opening must not synthesize a transaction")
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.Accounts()[0]
	second, _ := s.AddAccount(context.Background(), "Banka", core.Money{Cents: 1000})

	s.AddTransaction(context.Background(), draft(first.ID))
	s.AddTransaction(context.Background(), draft(second.ID))

	if err := s.SetActiveAccount(context.Background(), second.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := s.DeleteAccount(context.Background(), second.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// Exactly the deleted account's rows are gone, opening row included.
	rows := s.Transactions()
	if len(rows) != 1 || rows[0].AccountID != first.ID {
		t.Fatalf("unexpected surviving rows %+v", rows)
	}
	// Active falls back to the first remaining account.
	if s.ActiveAccountID() != first.ID {
		t.Fatalf("expected active %s, got %s", first.ID, s.ActiveAccountID())
	}
}

func TestDeleteLastAccountRejected(t *testing.T) {
	s, _ := newTestStore(t)
	only := s.Accounts()[0]

	err := s.DeleteAccount(context.Background(), only.ID)
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(s.Accounts()) != 1 || s.ActiveAccountID() != only.ID {
		t.Fatal("rejected delete must change nothing")
	}
}

func TestCategoryRegistry(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	if err := s.AddCategory(context.Background(), core.Income, "Kripto"); err != nil {
		t.Fatalf("add: %v", err)
	}
	cats := s.Categories()
	if cats.Income[len(cats.Income)-1] != "Kripto" {
		t.Fatal("add must append in insertion order")
	}

	if err := s.AddCategory(context.Background(), core.Income, "Kripto"); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if err := s.AddCategory(context.Background(), core.Expense, "  "); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected empty-name rejection, got %v", err)
	}

	// Removal leaves tagged transactions untouched: dangling but valid.
	s.AddTransaction(context.Background(), draft(account.ID))
	if err := s.RemoveCategory(context.Background(), core.Expense, "Market"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rows := s.Transactions(); rows[0].Category != "Market" {
		t.Fatal("category removal must not rewrite transactions")
	}
	// Removing a missing name is a no-op.
	if err := s.RemoveCategory(context.Background(), core.Expense, "Market"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestSetActiveAccountUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetActiveAccount(context.Background(), "acc_yok"); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTransactionIDsMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	// Freeze the clock so sequential adds land in the same millisecond.
	fixed := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, _ := s.AddTransaction(context.Background(), draft(account.ID))
	second, _ := s.AddTransaction(context.Background(), draft(account.ID))
	if second.ID <= first.ID {
		t.Fatalf("ids must be strictly increasing: %d then %d", first.ID, second.ID)
	}
}

func TestUpdateDoesNotConsumeIDs(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]

	fixed := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, _ := s.AddTransaction(context.Background(), draft(account.ID))
	d := draft(account.ID)
	d.Description = "düzeltme"
	if _, err := s.UpdateTransaction(context.Background(), first.ID, d); err != nil {
		t.Fatalf("update: %v", err)
	}
	second, _ := s.AddTransaction(context.Background(), draft(account.ID))
	if second.ID != first.ID+1 {
		t.Fatalf("edits must not advance the id counter: %d then %d", first.ID, second.ID)
	}
}

type failingPort struct {
	loaded core.Snapshot
}

func (f *failingPort) Load(ctx context.Context) (core.Snapshot, bool, error) {
	return f.loaded, false, nil
}

func (f *failingPort) Save(ctx context.Context, snap core.Snapshot) error {
	return errors.New("disk gone")
}

func TestSaveFailureDegradesToMemory(t *testing.T) {
	s := New(&failingPort{}, quietLogger())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	account := s.Accounts()[0]

	// Mutations keep working without durability.
	if _, err := s.AddTransaction(context.Background(), draft(account.ID)); err != nil {
		t.Fatalf("add must not fail on save error: %v", err)
	}
	if len(s.Transactions()) != 1 {
		t.Fatal("in-memory state must reflect the mutation")
	}
}

func TestReset(t *testing.T) {
	s, _ := newTestStore(t)
	account := s.Accounts()[0]
	s.AddTransaction(context.Background(), draft(account.ID))
	s.AddAccount(context.Background(), "Banka", core.Money{Cents: 100})

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("reset must clear the log")
	}
	accounts := s.Accounts()
	if len(accounts) != 1 || accounts[0].Name != DefaultAccountName {
		t.Fatalf("reset must recreate the default account, got %+v", accounts)
	}
}
