package renderer

import (
	"fmt"

	"github.com/etnz/papertrade"
)

// Transaction renders a single transaction to a one-line string.
func Transaction(tx papertrade.Transaction) string {
	switch tx.Side {
	case papertrade.Buy:
		return fmt.Sprintf("Bought %s of %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	case papertrade.Sell:
		return fmt.Sprintf("Sold %s of %s at %s", tx.Quantity, tx.Symbol, tx.Price)
	default:
		return string(tx.Side)
	}
}

// Transactions renders the transaction list as a markdown table.
func Transactions(txs []papertrade.Transaction) string {
	if len(txs) == 0 {
		return "No transactions.\n"
	}
	var t table
	t.header("Date", "Side", "Symbol", "Quantity", "Price", "Total")
	for _, tx := range txs {
		t.row(
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			string(tx.Side),
			tx.Symbol,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.TotalValue().String(),
		)
	}
	return "# Transactions\n\n" + t.String()
}

// OrderResult renders the outcome of an order submission.
func OrderResult(res papertrade.OrderResult) string {
	switch res.Status {
	case papertrade.Executed:
		return fmt.Sprintf("**Executed**: %s (transaction %s)\n", res.Message, res.Transaction.ID)
	case papertrade.Rejected:
		return fmt.Sprintf("**Rejected** (%s): %s\n", res.Reason, res.Message)
	default:
		return fmt.Sprintf("%s: %s\n", res.Status, res.Message)
	}
}
