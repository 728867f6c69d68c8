package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"finanspano/internal/core"
	"finanspano/internal/ledger"
)

// maxBodyBytes bounds mutation request bodies. Ledger payloads are tiny.
const maxBodyBytes = 1 << 16

// transactionRequest is the wire form of a transaction draft. Amount is the
// entered magnitude as text; the sign comes from the type.
type transactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	AccountID   string `json:"accountId"`
	Date        string `json:"date"`
}

type accountRequest struct {
	Name           string `json:"name"`
	OpeningBalance string `json:"openingBalance"`
}

type activeAccountRequest struct {
	ID string `json:"id"`
}

type categoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// decodeJSON reads a bounded JSON body into v, mapping malformed input to a
// validation failure.
func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: unreadable request body", core.ErrValidation)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: malformed request body", core.ErrValidation)
	}
	return nil
}

// parseDraft converts a wire transaction into a validated-enough draft; full
// validation happens inside the store.
func parseDraft(req transactionRequest) (core.Draft, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Draft{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Draft{}, err
	}
	return core.Draft{
		Description: req.Description,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(req.Type),
		Category:    req.Category,
		AccountID:   req.AccountID,
		Date:        date,
	}, nil
}

// parseFilter reads the filter constraints from query parameters. Missing
// parameters stay wildcards.
func parseFilter(query url.Values) ledger.Filter {
	return ledger.Filter{
		Search:   strings.TrimSpace(query.Get("search")),
		Type:     strings.TrimSpace(query.Get("type")),
		Category: strings.TrimSpace(query.Get("category")),
		Account:  strings.TrimSpace(query.Get("account")),
	}
}

// parseRange reads the report bounds. Absent parameters come back as zero
// dates; the aggregator turns an incomplete pair into ErrRangeNotSelected.
func parseRange(query url.Values) (from, to core.Date, err error) {
	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if from, err = core.ParseDate(v); err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if to, err = core.ParseDate(v); err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	return from, to, nil
}

// pathID parses the {id} path segment of transaction routes.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid transaction id %q", core.ErrValidation, r.PathValue("id"))
	}
	return id, nil
}
