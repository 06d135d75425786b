package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/leo-otica/otica-erp/internal/finance"
	"github.com/leo-otica/otica-erp/internal/models"
)

func tx(kind, amount string) models.Transaction {
	return models.Transaction{
		Type:   kind,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := finance.Summarize(nil)

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.Balance.IsZero())
	assert.Equal(t, 0, s.Count)
}

func TestSummarizeMixed(t *testing.T) {
	s := finance.Summarize([]models.Transaction{
		tx(models.TransactionIncome, "1500.00"),
		tx(models.TransactionIncome, "349.90"),
		tx(models.TransactionExpense, "830.45"),
		tx(models.TransactionExpense, "19.55"),
	})

	assert.Equal(t, "1849.90", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "850.00", s.TotalExpense.StringFixed(2))
	assert.Equal(t, "999.90", s.Balance.StringFixed(2))
	assert.Equal(t, 4, s.Count)
}

// soma decimal exata: 0.1 + 0.2 tem que dar 0.3, não 0.30000000000000004
func TestSummarizeExactCents(t *testing.T) {
	s := finance.Summarize([]models.Transaction{
		tx(models.TransactionIncome, "0.1"),
		tx(models.TransactionIncome, "0.2"),
	})

	assert.True(t, s.TotalIncome.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("0.3")))
}

func TestBalanceIsIncomeMinusExpense(t *testing.T) {
	s := finance.Summarize([]models.Transaction{
		tx(models.TransactionExpense, "100.00"),
	})

	assert.Equal(t, "-100.00", s.Balance.StringFixed(2))
	assert.True(t, s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)))
}

func TestSummarizeIgnoresUnknownType(t *testing.T) {
	s := finance.Summarize([]models.Transaction{
		tx("transfer", "50.00"),
	})

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.Equal(t, 1, s.Count)
}
