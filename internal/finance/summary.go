package finance

import (
	"github.com/shopspring/decimal"

	"github.com/leo-otica/otica-erp/internal/models"
)

// Summary é o agregado financeiro de um conjunto de lançamentos.
// Aritmética decimal exata; arredondamento só na formatação de saída.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
}

func Summarize(txs []models.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range txs {
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(t.Amount)
		case models.TransactionExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		Count:        len(txs),
	}
}
