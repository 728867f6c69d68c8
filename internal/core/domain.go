package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
	Initial TransactionType = "initial"
)

type (
	// TransactionType discriminates the three transaction kinds. Income and
	// initial carry non-negative amounts, expense carries a negative one.
	TransactionType string

	// Date is a calendar date. The time-of-day part is ignored everywhere;
	// comparisons happen at day granularity.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		AccountID   string          `json:"accountId"`
		Date        Date            `json:"date"`
	}

	Account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		// Balance is a derived projection. It is recomputed from the
		// transaction log on every read and never trusted from storage.
		Balance Money `json:"balance"`
	}

	// Categories is the registry of category names, one ordered list per
	// direction. Order is insertion order and doubles as display order.
	Categories struct {
		Income  []string `json:"income"`
		Expense []string `json:"expense"`
	}

	// Snapshot is the persisted unit: the whole ledger in one blob.
	Snapshot struct {
		Transactions    []Transaction `json:"transactions"`
		Accounts        []Account     `json:"accounts"`
		Categories      Categories    `json:"categories"`
		ActiveAccountID string        `json:"activeAccountId"`
	}

	// Draft carries user-entered transaction fields before sign
	// normalization and id assignment. Amount is the entered magnitude.
	Draft struct {
		Description string
		Amount      Money
		Type        TransactionType
		Category    string
		AccountID   string
		Date        Date
	}
)

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Initial:
		return true
	default:
		return false
	}
}

// NewDate creates a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return Date{Time: t}, nil
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// day truncates to midnight UTC so range checks ignore the clock.
func (d Date) day() time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// OnOrAfter reports whether d falls on other's day or later.
func (d Date) OnOrAfter(other Date) bool {
	return !d.day().Before(other.day())
}

// OnOrBefore reports whether d falls on other's day or earlier.
func (d Date) OnOrBefore(other Date) bool {
	return !d.day().After(other.day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Tolerate full timestamps: opening-balance rows of older snapshots
	// carried wall-clock values rather than plain dates.
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("%w: invalid date %q", ErrValidation, s)
}

// Validate checks the draft for the fields every transaction must carry.
// The amount is the entered magnitude, so it must be strictly positive.
func (dr Draft) Validate() error {
	if strings.TrimSpace(dr.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrValidation)
	}
	if dr.Amount.Cents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !dr.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, dr.Type)
	}
	if strings.TrimSpace(dr.Category) == "" {
		return fmt.Errorf("%w: empty category", ErrValidation)
	}
	if strings.TrimSpace(dr.AccountID) == "" {
		return fmt.Errorf("%w: missing account", ErrValidation)
	}
	if dr.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrValidation)
	}
	return nil
}

// SignedAmount applies the per-type sign convention to the entered magnitude:
// expenses store the negated value, everything else stays positive.
func (dr Draft) SignedAmount() Money {
	if dr.Type == Expense {
		return Money{Cents: -dr.Amount.Cents}
	}
	return Money{Cents: dr.Amount.Cents}
}

// SignValid reports whether the stored amount sign matches the type:
// negative iff expense.
func (t Transaction) SignValid() bool {
	switch t.Type {
	case Expense:
		return t.Amount.Cents < 0
	case Income, Initial:
		return t.Amount.Cents >= 0
	default:
		return false
	}
}

// DefaultCategories returns the registry a fresh ledger starts with.
func DefaultCategories() Categories {
	return Categories{
		Income:  []string{"Maaş", "Bonus", "Satış", "Diğer"},
		Expense: []string{"Fatura", "Market", "Ulaşım", "Kira", "Eğlence", "Sağlık", "Diğer"},
	}
}

// For returns the registry list for a direction. Initial rows are synthetic
// and have no registry list.
func (c Categories) For(t TransactionType) ([]string, error) {
	switch t {
	case Income:
		return c.Income, nil
	case Expense:
		return c.Expense, nil
	default:
		return nil, fmt.Errorf("%w: no category list for type %q", ErrValidation, t)
	}
}

// Clone returns a deep copy so read-side callers cannot alias store state.
func (c Categories) Clone() Categories {
	return Categories{
		Income:  append([]string(nil), c.Income...),
		Expense: append([]string(nil), c.Expense...),
	}
}
