package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo-otica/otica-erp/internal/export"
	"github.com/leo-otica/otica-erp/internal/models"
)

func sampleTx(kind, amount, description string) models.Transaction {
	return models.Transaction{
		Description:   description,
		Amount:        decimal.RequireFromString(amount),
		Type:          kind,
		Category:      "Vendas",
		Date:          time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		PaymentMethod: models.PaymentPix,
		Status:        models.TransactionPaid,
	}
}

func csvLines(t *testing.T, content string) []string {
	t.Helper()
	require.True(t, strings.HasPrefix(content, "\uFEFF"), "CSV deve começar com BOM UTF-8")
	body := strings.TrimPrefix(content, "\uFEFF")
	return strings.Split(strings.TrimRight(body, "\r\n"), "\n")
}

func TestTransactionsHeader(t *testing.T) {
	content, err := export.Transactions(nil)
	require.NoError(t, err)

	lines := csvLines(t, content)
	require.Len(t, lines, 1)
	assert.Equal(t, "Data,Descrição,Categoria,Método de Pagamento,Status,Tipo,Valor", strings.TrimRight(lines[0], "\r"))
}

func TestTransactionsRowCount(t *testing.T) {
	txs := []models.Transaction{
		sampleTx(models.TransactionIncome, "100.00", "Venda O.S. #1 - Ana Silva"),
		sampleTx(models.TransactionExpense, "45.50", "Conta de luz"),
		sampleTx(models.TransactionIncome, "349.90", "Venda balcão"),
	}

	content, err := export.Transactions(txs)
	require.NoError(t, err)

	// N lançamentos => N+1 linhas (cabeçalho + uma por lançamento)
	lines := csvLines(t, content)
	assert.Len(t, lines, len(txs)+1)
}

func TestExpensesAreNegative(t *testing.T) {
	content, err := export.Transactions([]models.Transaction{
		sampleTx(models.TransactionExpense, "830.45", "Aluguel"),
	})
	require.NoError(t, err)

	lines := csvLines(t, content)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "-830.45")
	assert.Contains(t, lines[1], "Saída")
}

func TestIncomeKeepsPositiveAmountAndLabels(t *testing.T) {
	content, err := export.Transactions([]models.Transaction{
		sampleTx(models.TransactionIncome, "1500.00", "Venda O.S. #42 - João"),
	})
	require.NoError(t, err)

	lines := csvLines(t, content)
	require.Len(t, lines, 2)
	row := lines[1]

	assert.Contains(t, row, "2026-08-14")
	assert.Contains(t, row, "1500.00")
	assert.NotContains(t, row, "-1500.00")
	assert.Contains(t, row, "Entrada")
	assert.Contains(t, row, "PIX")
	assert.Contains(t, row, "Pago")
}

func TestFilenamePattern(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "relatorio-financeiro-2026-08-29-14-05-09.csv", export.Filename(now))
}
