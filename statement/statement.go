// Package statement parses bank-statement CSV exports for bulk import.
// Amounts are parsed exactly with decimals; a signed amount decides the
// transaction direction.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"finanzas/api/models"

	"github.com/shopspring/decimal"
)

// Row is one parsed statement line.
type Row struct {
	Date        string
	Description string
	Amount      decimal.Decimal
}

// Parse reads `date,description,amount` lines. A header row is
// detected by its non-date first column and skipped. Dates must be
// YYYY-MM-DD.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	rows := []Row{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv: %v", err)
		}
		line++

		date := strings.TrimSpace(record[0])
		if _, err := time.Parse("2006-01-02", date); err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: invalid date %q", line, date)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q", line, record[2])
		}

		rows = append(rows, Row{
			Date:        date,
			Description: strings.TrimSpace(record[1]),
			Amount:      amount,
		})
	}
	return rows, nil
}

// Direction maps the signed statement amount to a transaction type and
// a positive magnitude: money out of the account is an expense.
func (r Row) Direction() (txType string, amount float64) {
	if r.Amount.IsNegative() {
		return models.TypeExpense, r.Amount.Neg().InexactFloat64()
	}
	return models.TypeIncome, r.Amount.InexactFloat64()
}
