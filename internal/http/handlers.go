package http

import (
	"net/http"
	"strconv"
	"time"

	"finanspano/internal/core"
	"finanspano/internal/ledger"
	"finanspano/internal/report"
)

const recentLimit = 5

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleState returns everything the rendering layer needs besides the
// transaction lists: accounts with derived balances, the active account and
// the category registry.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"accounts":        s.store.Accounts(),
		"activeAccountId": s.store.ActiveAccountID(),
		"categories":      s.store.Categories(),
	})
}

type moneyDisplay struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance,omitempty"`
	Net     string `json:"net,omitempty"`
}

// handleDashboard assembles the active account's card totals, its five most
// recent transactions and the expense breakdown feeding the chart widget.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := s.store.ActiveAccount()
	if !ok {
		s.respondError(w, r, core.ErrNotFound)
		return
	}
	transactions := s.store.Transactions()
	summary := report.Summarize(account, transactions)
	accountRows := ledger.Filter{Account: account.ID}.Matching(transactions)

	respondJSON(w, http.StatusOK, map[string]any{
		"account": account,
		"summary": summary,
		"display": moneyDisplay{
			Income:  report.FormatTRY(summary.Income),
			Expense: report.FormatTRY(summary.Expense.Abs()),
			Balance: report.FormatTRY(summary.Balance),
		},
		"recent":    s.store.RecentTransactions(recentLimit),
		"breakdown": report.CategoryBreakdown(accountRows),
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r.URL.Query())
	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": s.store.FilteredTransactions(filter),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	draft, err := parseDraft(req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	t, err := s.store.AddTransaction(r.Context(), draft)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	draft, err := parseDraft(req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	t, err := s.store.UpdateTransaction(r.Context(), id, draft)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	opening := core.Money{}
	if req.OpeningBalance != "" && req.OpeningBalance != "0" {
		cents, err := core.ParseDecimalToCents(req.OpeningBalance)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		opening = core.Money{Cents: cents}
	}
	account, err := s.store.AddAccount(r.Context(), req.Name, opening)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetActiveAccount(w http.ResponseWriter, r *http.Request) {
	var req activeAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.SetActiveAccount(r.Context(), req.ID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.AddCategory(r.Context(), core.TransactionType(req.Type), req.Name); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if err := s.store.RemoveCategory(r.Context(), core.TransactionType(query.Get("type")), query.Get("name")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReport summarizes the inclusive [from, to] range across all
// accounts.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	summary, err := report.SummarizeRange(s.store.Transactions(), from, to)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"display": moneyDisplay{
			Income:  report.FormatTRY(summary.Income),
			Expense: report.FormatTRY(summary.Expense.Abs()),
			Net:     report.FormatTRY(summary.Net),
		},
	})
}

// handleExport streams the range's transactions as the CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r.URL.Query())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rows, err := report.InRange(s.store.Transactions(), from, to)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(report.ExportFilename(time.Now())))
	if err := report.WriteCSV(w, rows, s.store.Accounts()); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed", "error", err.Error())
	}
}

// handleReset wipes the entire ledger back to the bootstrap state.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
