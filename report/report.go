// Package report computes spending summaries from the raw transaction
// set. Nothing here is cached or stored; callers pass the transactions
// for the period and get derived numbers back.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"finanzas/api/models"
)

// MonthOf formats the active period key for a point in time.
func MonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// InMonth reports whether a transaction date (YYYY-MM-DD) falls inside
// the given month (YYYY-MM).
func InMonth(date, month string) bool {
	return strings.HasPrefix(date, month+"-")
}

// Spent sums expense transactions for one category inside the month.
// Budgets never trust a stored counter; this is the only source of the
// spent figure.
func Spent(transactions []models.Transaction, category, month string) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Type != models.TypeExpense || tx.Category != category {
			continue
		}
		if !InMonth(tx.Date, month) {
			continue
		}
		total += tx.Amount
	}
	return total
}

// Fill populates the derived budget fields from the transaction set.
func Fill(b *models.Budget, transactions []models.Transaction, month string) {
	b.Spent = Spent(transactions, b.Category, month)
	b.Remaining = b.Amount - b.Spent
	if b.Amount > 0 {
		b.Percentage = b.Spent / b.Amount * 100
	}
}

// Monthly builds the month's income/expense summary with a per-category
// expense breakdown, largest first.
func Monthly(transactions []models.Transaction, month string) models.MonthlyReport {
	r := models.MonthlyReport{Month: month}
	byCategory := make(map[string]float64)

	for _, tx := range transactions {
		if !InMonth(tx.Date, month) {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			r.TotalIncome += tx.Amount
		case models.TypeExpense:
			r.TotalExpenses += tx.Amount
			byCategory[tx.Category] += tx.Amount
		}
	}
	r.Balance = r.TotalIncome - r.TotalExpenses

	for category, amount := range byCategory {
		r.ByCategory = append(r.ByCategory, models.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(r.ByCategory, func(i, j int) bool {
		if r.ByCategory[i].Amount != r.ByCategory[j].Amount {
			return r.ByCategory[i].Amount > r.ByCategory[j].Amount
		}
		return r.ByCategory[i].Category < r.ByCategory[j].Category
	})
	return r
}

// FormatChat renders the summary as the chat reply text.
func FormatChat(r models.MonthlyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumen %s\n", r.Month)
	fmt.Fprintf(&b, "💰 Ingresos: $%.0f\n", r.TotalIncome)
	fmt.Fprintf(&b, "💸 Gastos: $%.0f\n", r.TotalExpenses)
	fmt.Fprintf(&b, "🧮 Balance: $%.0f", r.Balance)
	if len(r.ByCategory) > 0 {
		b.WriteString("\n\nGastos por categoría:")
		for _, ct := range r.ByCategory {
			fmt.Fprintf(&b, "\n• %s: $%.0f", ct.Category, ct.Amount)
		}
	}
	return b.String()
}
