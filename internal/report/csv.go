package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"finanspano/internal/core"
)

// UnknownAccountName is printed when a row's account reference dangles.
const UnknownAccountName = "Bilinmeyen"

// csvHeader is a compatibility contract: consumers of the export expect
// exactly these columns in this order.
var csvHeader = []string{"Tarih", "Açıklama", "Kategori", "Hesap", "Tutar"}

// WriteCSV writes one header row plus one row per transaction: localized
// date, description, category, resolved account name and the amount with two
// decimals. Output is UTF-8 so Turkish descriptions survive round trips.
func WriteCSV(w io.Writer, transactions []core.Transaction, accounts []core.Account) error {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		name, ok := names[t.AccountID]
		if !ok {
			name = UnknownAccountName
		}
		row := []string{
			t.Date.Format("02.01.2006"),
			t.Description,
			t.Category,
			name,
			t.Amount.Decimal(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names the download after the export date.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("rapor_%s.csv", t.UTC().Format("2006-01-02"))
}
