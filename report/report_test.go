package report

import (
	"testing"

	"finanzas/api/models"

	"github.com/stretchr/testify/assert"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Type: models.TypeExpense, Category: "Alimentación", Amount: 25000, Date: "2026-03-02"},
		{Type: models.TypeExpense, Category: "Alimentación", Amount: 18000, Date: "2026-03-15"},
		{Type: models.TypeExpense, Category: "Transporte", Amount: 60000, Date: "2026-03-20"},
		{Type: models.TypeIncome, Category: "Salario", Amount: 1000000, Date: "2026-03-01"},
		// Outside the month, must never count.
		{Type: models.TypeExpense, Category: "Alimentación", Amount: 99999, Date: "2026-02-28"},
		// Income in the category, must not count as spent.
		{Type: models.TypeIncome, Category: "Alimentación", Amount: 5000, Date: "2026-03-10"},
	}
}

func TestSpentSumsOnlyMonthExpenses(t *testing.T) {
	txs := sampleTransactions()
	assert.Equal(t, float64(43000), Spent(txs, "Alimentación", "2026-03"))
	assert.Equal(t, float64(60000), Spent(txs, "Transporte", "2026-03"))
	assert.Equal(t, float64(0), Spent(txs, "Salud", "2026-03"))

	// Recomputation from the same set is stable.
	assert.Equal(t, Spent(txs, "Alimentación", "2026-03"), Spent(txs, "Alimentación", "2026-03"))
}

func TestFill(t *testing.T) {
	b := models.Budget{Category: "Alimentación", Amount: 100000}
	Fill(&b, sampleTransactions(), "2026-03")
	assert.Equal(t, float64(43000), b.Spent)
	assert.Equal(t, float64(57000), b.Remaining)
	assert.InDelta(t, 43.0, b.Percentage, 0.001)

	zero := models.Budget{Category: "Transporte"}
	Fill(&zero, sampleTransactions(), "2026-03")
	assert.Equal(t, float64(0), zero.Percentage)
}

func TestMonthly(t *testing.T) {
	r := Monthly(sampleTransactions(), "2026-03")
	assert.Equal(t, float64(1005000), r.TotalIncome)
	assert.Equal(t, float64(103000), r.TotalExpenses)
	assert.Equal(t, float64(902000), r.Balance)
	assert.Equal(t, []models.CategoryTotal{
		{Category: "Transporte", Amount: 60000},
		{Category: "Alimentación", Amount: 43000},
	}, r.ByCategory)
}

func TestFormatChat(t *testing.T) {
	text := FormatChat(Monthly(sampleTransactions(), "2026-03"))
	assert.Contains(t, text, "2026-03")
	assert.Contains(t, text, "Transporte")
	assert.Contains(t, text, "$1005000")
}
