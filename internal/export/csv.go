package export

import (
	"time"

	"github.com/gocarina/gocsv"

	"github.com/leo-otica/otica-erp/internal/models"
)

// BOM UTF-8: sem ele o Excel quebra os acentos do cabeçalho.
const utf8BOM = "\uFEFF"

type transactionRow struct {
	Date          string `csv:"Data"`
	Description   string `csv:"Descrição"`
	Category      string `csv:"Categoria"`
	PaymentMethod string `csv:"Método de Pagamento"`
	Status        string `csv:"Status"`
	Type          string `csv:"Tipo"`
	Amount        string `csv:"Valor"`
}

var paymentLabels = map[string]string{
	models.PaymentCreditCard: "Cartão de Crédito",
	models.PaymentDebitCard:  "Cartão de Débito",
	models.PaymentCash:       "Dinheiro",
	models.PaymentPix:        "PIX",
	models.PaymentBoleto:     "Boleto",
}

var statusLabels = map[string]string{
	models.TransactionPaid:    "Pago",
	models.TransactionPending: "Pendente",
}

var typeLabels = map[string]string{
	models.TransactionIncome:  "Entrada",
	models.TransactionExpense: "Saída",
}

func label(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Transactions gera o relatório CSV: cabeçalho + uma linha por lançamento,
// saídas com valor negativo.
func Transactions(txs []models.Transaction) (string, error) {
	rows := make([]transactionRow, 0, len(txs))

	for _, t := range txs {
		amount := t.Amount.StringFixed(2)
		if t.Type == models.TransactionExpense {
			amount = "-" + amount
		}

		rows = append(rows, transactionRow{
			Date:          t.Date.Format("2006-01-02"),
			Description:   t.Description,
			Category:      t.Category,
			PaymentMethod: label(paymentLabels, t.PaymentMethod),
			Status:        label(statusLabels, t.Status),
			Type:          label(typeLabels, t.Type),
			Amount:        amount,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", err
	}

	return utf8BOM + out, nil
}

// Filename segue o padrão do relatório: relatorio-financeiro-<data>-<hora>.csv
func Filename(now time.Time) string {
	return "relatorio-financeiro-" + now.Format("2006-01-02-15-04-05") + ".csv"
}
