package papertrade

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceMetrics are aggregate trading statistics derived from the
// transaction log.
type PerformanceMetrics struct {
	TotalTrades      int             // sell transactions that produced a PnL entry
	ProfitableTrades int             // trades with PnL > 0
	WinRate          decimal.Decimal // percentage, 0-100
	RealizedPnL      Money           // sum of per-sell PnL
	TotalVolume      Money           // sum of total value over buys and sells
}

// costBasis is the running total used by the replay: quantity held and the
// cost of acquiring it.
type costBasis struct {
	quantity Quantity
	cost     Money
}

// perTradePnL replays the transaction log in timestamp order and returns
// the realized profit or loss of every sell, using the same
// weighted-average cost matching as the ledger itself. A sell without a
// recorded cost basis contributes exactly zero rather than failing.
func perTradePnL(transactions []Transaction) []Money {
	basis := make(map[string]costBasis)
	var pnls []Money

	for _, tx := range SortByTimestamp(transactions, false) {
		switch tx.Side {
		case Buy:
			b := basis[tx.Symbol]
			basis[tx.Symbol] = costBasis{
				quantity: b.quantity.Add(tx.Quantity),
				cost:     b.cost.Add(tx.TotalValue()),
			}
		case Sell:
			b, ok := basis[tx.Symbol]
			if !ok || !b.quantity.IsPositive() {
				// Orphan sell: no prior buy recorded.
				pnls = append(pnls, M(0, tx.Price.Currency()))
				continue
			}
			avgCost := b.cost.Div(b.quantity)
			pnls = append(pnls, tx.Price.Sub(avgCost).Mul(tx.Quantity))

			remaining := b.quantity.Sub(tx.Quantity)
			if remaining.IsPositive() {
				basis[tx.Symbol] = costBasis{
					quantity: remaining,
					cost:     avgCost.Mul(remaining),
				}
			} else {
				basis[tx.Symbol] = costBasis{}
			}
		}
	}
	return pnls
}

// RealizedPnL returns the total profit or loss locked in by sell
// transactions, computed against the average cost basis at time of sale.
func RealizedPnL(transactions []Transaction) Money {
	var total Money
	for _, pnl := range perTradePnL(transactions) {
		total = total.Add(pnl)
	}
	return total
}

// Metrics computes aggregate statistics from the transaction log without
// mutating it.
func Metrics(transactions []Transaction) PerformanceMetrics {
	var realized, volume Money
	pnls := perTradePnL(transactions)
	profitable := 0
	for _, pnl := range pnls {
		realized = realized.Add(pnl)
		if pnl.IsPositive() {
			profitable++
		}
	}
	for _, tx := range transactions {
		volume = volume.Add(tx.TotalValue())
	}

	winRate := decimal.Zero
	if len(pnls) > 0 {
		winRate = decimal.NewFromInt(int64(profitable)).
			Div(decimal.NewFromInt(int64(len(pnls)))).
			Mul(decimal.NewFromInt(100))
	}

	return PerformanceMetrics{
		TotalTrades:      len(pnls),
		ProfitableTrades: profitable,
		WinRate:          winRate,
		RealizedPnL:      realized,
		TotalVolume:      volume,
	}
}

// SortByTimestamp returns the transactions ordered by timestamp. The sort
// is stable: transactions with equal timestamps keep their original
// relative order.
func SortByTimestamp(transactions []Transaction, descending bool) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[j].Timestamp.Before(out[i].Timestamp)
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// csvHeader is the fixed column layout of the transaction export.
var csvHeader = []string{"id", "symbol", "order_type", "quantity", "price", "total_value", "timestamp"}

// ExportCSV writes the transactions to w, one row per transaction after a
// header row. Quantities and amounts are exact decimal strings, timestamps
// RFC 3339.
func ExportCSV(w io.Writer, transactions []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for _, tx := range transactions {
		row := []string{
			tx.ID,
			tx.Symbol,
			string(tx.Side),
			tx.Quantity.String(),
			tx.Price.Amount(),
			tx.TotalValue().Amount(),
			tx.Timestamp.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write csv row for transaction %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVFile writes the transactions to the file at path, creating or
// truncating it.
func ExportCSVFile(path string, transactions []Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create export file %q: %w", path, err)
	}
	defer f.Close()
	if err := ExportCSV(f, transactions); err != nil {
		return err
	}
	return f.Close()
}
