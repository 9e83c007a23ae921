// Package intent turns free chat text into a transaction or report
// intent. Matching is pure regex with a fixed priority order; the first
// pattern that matches wins, there is no scoring.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"finanzas/api/models"
)

type Kind int

const (
	KindNone Kind = iota
	KindTransaction
	KindBudget
	KindReport
)

// Intent is the parsed meaning of one chat message. For transactions
// Type, Amount and Description are set; Category is resolved later by
// the categorizer. For budgets Description carries the category text.
type Intent struct {
	Kind        Kind
	Type        string
	Amount      float64
	Description string
}

// amountPat accepts $25000, 1.000.000,50 and 25000.5 alike.
const amountPat = `\$?(\d+(?:[.,]\d+)*)`

var (
	expenseRe = regexp.MustCompile(`(?:gast[eé]|pagu[eé]|compr[eé]|deb[eé]|spent|paid|bought)\s*` + amountPat + `\s+(?:en|de|para|por|in|for|at|on)\s+(.+)`)
	savingsRe = regexp.MustCompile(`(?:ahorr[eé]|deposit[eé]|guard[eé]|consign[eé])\s*` + amountPat + `(?:\s+(?:en|para|de)\s+)?\s*(.*)`)
	incomeRe  = regexp.MustCompile(`(?:recib[ií]|ingres[oó]|cobr[eé]|gan[eé]|me pagaron|received|earned|was paid)\s*` + amountPat + `\s+(?:(?:de|por|from|for)\s+)?(.+)`)
	budgetRe  = regexp.MustCompile(`(?:presupuesto|budget)\s+(?:de\s+)?` + amountPat + `\s+(?:para|en)\s+(.+)`)
	bareRe    = regexp.MustCompile(`^` + amountPat + `\s+(.+)$`)
	reportRe  = regexp.MustCompile(`reporte|resumen|informe|balance|saldo|gastos`)

	thousandsRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

// Words in a bare "<number> <text>" message that flip the default
// expense reading to income.
var incomeKeywords = []string{
	"salario", "sueldo", "nomina", "nómina", "pago", "honorarios",
	"freelance", "salary", "payment", "earned",
}

// Parse classifies text. The second return is false when nothing was
// recognized; the caller should reply with a help message.
func Parse(text string) (Intent, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Intent{}, false
	}

	if m := expenseRe.FindStringSubmatch(lower); m != nil {
		return transaction(models.TypeExpense, m[1], m[2])
	}

	// Money moved into savings still leaves the checking flow, so a
	// deposit is recorded as an expense.
	if m := savingsRe.FindStringSubmatch(lower); m != nil {
		desc := strings.TrimSpace(m[2])
		if desc == "" {
			desc = "ahorro"
		}
		return transaction(models.TypeExpense, m[1], desc)
	}

	if m := incomeRe.FindStringSubmatch(lower); m != nil {
		return transaction(models.TypeIncome, m[1], m[2])
	}

	if m := budgetRe.FindStringSubmatch(lower); m != nil {
		amount, err := ParseAmount(m[1])
		if err != nil {
			return Intent{}, false
		}
		return Intent{
			Kind:        KindBudget,
			Amount:      amount,
			Description: strings.TrimSpace(m[2]),
		}, true
	}

	if m := bareRe.FindStringSubmatch(lower); m != nil {
		txType := models.TypeExpense
		if containsAny(m[2], incomeKeywords) {
			txType = models.TypeIncome
		}
		return transaction(txType, m[1], m[2])
	}

	if reportRe.MatchString(lower) {
		return Intent{Kind: KindReport}, true
	}

	return Intent{}, false
}

func transaction(txType, rawAmount, description string) (Intent, bool) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Intent{}, false
	}
	return Intent{
		Kind:        KindTransaction,
		Type:        txType,
		Amount:      amount,
		Description: strings.TrimSpace(description),
	}, true
}

// ParseAmount normalizes the two accepted groupings to a float:
// a comma marks the decimal part and dots are thousands separators
// ("1.000.000,50"), otherwise dots grouping digits in threes are
// thousands ("25.000") and anything else is a plain decimal ("25000.5").
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsRe.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
