package statement

import (
	"strings"
	"testing"

	"finanzas/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithHeader(t *testing.T) {
	input := `date,description,amount
2026-03-02,EXITO POBLADO,-85000.50
2026-03-05,NOMINA MARZO,2500000
`
	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-03-02", rows[0].Date)
	assert.Equal(t, "EXITO POBLADO", rows[0].Description)

	txType, amount := rows[0].Direction()
	assert.Equal(t, models.TypeExpense, txType)
	assert.Equal(t, 85000.5, amount)

	txType, amount = rows[1].Direction()
	assert.Equal(t, models.TypeIncome, txType)
	assert.Equal(t, 2500000.0, amount)
}

func TestParseWithoutHeader(t *testing.T) {
	rows, err := Parse(strings.NewReader("2026-03-02,Taxi,-12000\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParseRejectsBadRows(t *testing.T) {
	_, err := Parse(strings.NewReader("2026-03-02,Taxi,doce mil\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("header,desc,amount\nnot-a-date,Taxi,-12000\n"))
	assert.Error(t, err)

	// Wrong column count.
	_, err = Parse(strings.NewReader("2026-03-02,Taxi\n"))
	assert.Error(t, err)
}
