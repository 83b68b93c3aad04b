package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/papertrade"
)

func usd(s string) papertrade.Money {
	m, err := papertrade.ParseMoney(s, "USDT")
	if err != nil {
		panic(err)
	}
	return m
}

func qty(s string) papertrade.Quantity {
	q, err := papertrade.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

func TestTransaction(t *testing.T) {
	buy := papertrade.Transaction{
		Symbol: "BTCUSDT", Side: papertrade.Buy,
		Quantity: qty("0.1"), Price: usd("50000"),
	}
	if got := Transaction(buy); got != "Bought 0.1 of BTCUSDT at 50000.00 USDT" {
		t.Errorf("Transaction(buy) = %q", got)
	}

	sell := buy
	sell.Side = papertrade.Sell
	if got := Transaction(sell); got != "Sold 0.1 of BTCUSDT at 50000.00 USDT" {
		t.Errorf("Transaction(sell) = %q", got)
	}
}

func TestTransactionsEmpty(t *testing.T) {
	if got := Transactions(nil); got != "No transactions.\n" {
		t.Errorf("Transactions(nil) = %q", got)
	}
}

func TestTransactionsTable(t *testing.T) {
	txs := []papertrade.Transaction{
		{
			ID: "t1", Symbol: "BTCUSDT", Side: papertrade.Buy,
			Quantity: qty("0.1"), Price: usd("50000"),
			Timestamp: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	got := Transactions(txs)

	for _, want := range []string{
		"# Transactions",
		"| Date | Side | Symbol | Quantity | Price | Total |",
		"| --- | --- | --- | --- | --- | --- |",
		"| 2024-03-01 10:30:00 | BUY | BTCUSDT | 0.1 | 50000.00 USDT | 5000.00 USDT |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestOrderResult(t *testing.T) {
	tx := papertrade.Transaction{ID: "t1"}
	executed := papertrade.OrderResult{
		Status:      papertrade.Executed,
		Transaction: &tx,
		Message:     "bought 0.1 BTCUSDT at 50000.00 USDT",
	}
	got := OrderResult(executed)
	if !strings.Contains(got, "**Executed**") || !strings.Contains(got, "t1") {
		t.Errorf("OrderResult(executed) = %q", got)
	}

	rejected := papertrade.OrderResult{
		Status:  papertrade.Rejected,
		Reason:  papertrade.InsufficientBalance,
		Message: "insufficient balance",
	}
	got = OrderResult(rejected)
	if !strings.Contains(got, "**Rejected**") || !strings.Contains(got, "insufficient_balance") {
		t.Errorf("OrderResult(rejected) = %q", got)
	}
}

func TestHoldings(t *testing.T) {
	p := papertrade.NewPortfolio(usd("10000"))
	p.ExecuteBuy("BTCUSDT", qty("0.1"), usd("50000"))
	p.ExecuteBuy("ETHUSDT", qty("1"), usd("3000"))

	prices := map[string]papertrade.Money{
		"BTCUSDT": usd("60000"),
		// ETHUSDT deliberately unpriced.
	}

	got := Holdings(p, prices)

	for _, want := range []string{
		"# Holdings",
		"Cash: 2000.00 USDT",
		"| BTCUSDT | 0.1 | 50000.00 USDT | 5000.00 USDT | 6000.00 USDT | +1000.00 USDT |",
		"| ETHUSDT | 1 | 3000.00 USDT | 3000.00 USDT | 3000.00 USDT | - |",
		"Total portfolio value: 11000.00 USDT",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}

	// Symbols come out sorted.
	if strings.Index(got, "BTCUSDT") > strings.Index(got, "ETHUSDT") {
		t.Error("symbols are not sorted")
	}
}

func TestHoldingsEmpty(t *testing.T) {
	p := papertrade.NewPortfolio(usd("10000"))

	got := Holdings(p, nil)

	if strings.Contains(got, "| Symbol |") {
		t.Error("empty portfolio should not render a positions table")
	}
	if !strings.Contains(got, "Cash: 10000.00 USDT") {
		t.Errorf("output is missing the cash line:\n%s", got)
	}
}

func TestMetrics(t *testing.T) {
	m := papertrade.PerformanceMetrics{
		TotalTrades:      2,
		ProfitableTrades: 1,
		WinRate:          qty("50").Decimal(),
		RealizedPnL:      usd("800"),
		TotalVolume:      usd("16800"),
	}

	got := Metrics(m)

	for _, want := range []string{
		"# Performance",
		"| Closed trades | 2 |",
		"| Profitable trades | 1 |",
		"| Win rate | 50.00 % |",
		"| Realized PnL | +800.00 USDT |",
		"| Total volume | 16800.00 USDT |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}
