package papertrade

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

// tradeLog builds a transaction list with deterministic timestamps one
// minute apart, in the given order.
func tradeLog(entries ...Transaction) []Transaction {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := range entries {
		entries[i].Timestamp = base.Add(time.Duration(i) * time.Minute)
	}
	return entries
}

func trade(id, symbol string, side Side, quantity, price string) Transaction {
	return Transaction{
		ID:       id,
		Symbol:   symbol,
		Side:     side,
		Quantity: qty(quantity),
		Price:    usd(price),
	}
}

func TestRealizedPnL(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want string
	}{
		{
			name: "no transactions",
			txs:  nil,
			want: "0",
		},
		{
			name: "buys only",
			txs: tradeLog(
				trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
			),
			want: "0",
		},
		{
			name: "single winning trade",
			txs: tradeLog(
				trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
				trade("t2", "BTCUSDT", Sell, "0.1", "60000"),
			),
			want: "1000",
		},
		{
			name: "single losing trade",
			txs: tradeLog(
				trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
				trade("t2", "BTCUSDT", Sell, "0.1", "40000"),
			),
			want: "-1000",
		},
		{
			name: "sell against blended average",
			// 0.1@50000 + 0.1@60000 -> avg 55000, sell 0.1@70000 -> +1500
			txs: tradeLog(
				trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
				trade("t2", "BTCUSDT", Buy, "0.1", "60000"),
				trade("t3", "BTCUSDT", Sell, "0.1", "70000"),
			),
			want: "1500",
		},
		{
			name: "orphan sell contributes zero",
			txs: tradeLog(
				trade("t1", "BTCUSDT", Sell, "0.1", "60000"),
			),
			want: "0",
		},
		{
			name: "symbols are independent",
			txs: tradeLog(
				trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
				trade("t2", "ETHUSDT", Buy, "1", "3000"),
				trade("t3", "BTCUSDT", Sell, "0.1", "55000"),
				trade("t4", "ETHUSDT", Sell, "1", "2800"),
			),
			want: "300", // +500 - 200
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RealizedPnL(tc.txs)
			if got.Amount() != tc.want {
				t.Errorf("RealizedPnL() = %s, want %s", got.Amount(), tc.want)
			}
		})
	}
}

func TestRealizedPnLIgnoresLogOrder(t *testing.T) {
	// The replay sorts by timestamp, not by slice order.
	txs := tradeLog(
		trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
		trade("t2", "BTCUSDT", Sell, "0.1", "60000"),
	)
	shuffled := []Transaction{txs[1], txs[0]}

	if got := RealizedPnL(shuffled); got.Amount() != "1000" {
		t.Errorf("RealizedPnL() = %s, want 1000", got.Amount())
	}
}

func TestMetrics(t *testing.T) {
	txs := tradeLog(
		trade("t1", "BTCUSDT", Buy, "0.1", "50000"),  // volume 5000
		trade("t2", "BTCUSDT", Sell, "0.1", "60000"), // +1000, volume 6000
		trade("t3", "ETHUSDT", Buy, "1", "3000"),     // volume 3000
		trade("t4", "ETHUSDT", Sell, "1", "2800"),    // -200, volume 2800
	)

	m := Metrics(txs)

	if m.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want 2", m.TotalTrades)
	}
	if m.ProfitableTrades != 1 {
		t.Errorf("ProfitableTrades = %d, want 1", m.ProfitableTrades)
	}
	if got := m.WinRate.String(); got != "50" {
		t.Errorf("WinRate = %s, want 50", got)
	}
	if got := m.RealizedPnL.Amount(); got != "800" {
		t.Errorf("RealizedPnL = %s, want 800", got)
	}
	if got := m.TotalVolume.Amount(); got != "16800" {
		t.Errorf("TotalVolume = %s, want 16800", got)
	}
}

func TestMetricsEmpty(t *testing.T) {
	m := Metrics(nil)
	if m.TotalTrades != 0 || m.ProfitableTrades != 0 {
		t.Errorf("trades = %d/%d, want 0/0", m.ProfitableTrades, m.TotalTrades)
	}
	if !m.WinRate.IsZero() {
		t.Errorf("WinRate = %s, want 0", m.WinRate)
	}
}

func TestMetricsBreakEvenIsNotAWin(t *testing.T) {
	txs := tradeLog(
		trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
		trade("t2", "BTCUSDT", Sell, "0.1", "50000"),
	)
	m := Metrics(txs)
	if m.ProfitableTrades != 0 {
		t.Errorf("ProfitableTrades = %d, want 0", m.ProfitableTrades)
	}
	if m.TotalTrades != 1 {
		t.Errorf("TotalTrades = %d, want 1", m.TotalTrades)
	}
}

func TestSortByTimestamp(t *testing.T) {
	txs := tradeLog(
		trade("t1", "BTCUSDT", Buy, "1", "1"),
		trade("t2", "BTCUSDT", Buy, "1", "1"),
		trade("t3", "BTCUSDT", Buy, "1", "1"),
	)
	shuffled := []Transaction{txs[2], txs[0], txs[1]}

	asc := SortByTimestamp(shuffled, false)
	if asc[0].ID != "t1" || asc[1].ID != "t2" || asc[2].ID != "t3" {
		t.Errorf("ascending order = %s %s %s", asc[0].ID, asc[1].ID, asc[2].ID)
	}

	desc := SortByTimestamp(shuffled, true)
	if desc[0].ID != "t3" || desc[1].ID != "t2" || desc[2].ID != "t1" {
		t.Errorf("descending order = %s %s %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}

	// The input slice is left untouched.
	if shuffled[0].ID != "t3" {
		t.Error("SortByTimestamp must not mutate its input")
	}
}

func TestSortByTimestampStable(t *testing.T) {
	when := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: "a", Symbol: "BTCUSDT", Side: Buy, Quantity: qty("1"), Price: usd("1"), Timestamp: when},
		{ID: "b", Symbol: "BTCUSDT", Side: Buy, Quantity: qty("1"), Price: usd("1"), Timestamp: when},
		{ID: "c", Symbol: "BTCUSDT", Side: Buy, Quantity: qty("1"), Price: usd("1"), Timestamp: when},
	}

	sorted := SortByTimestamp(txs, false)
	if sorted[0].ID != "a" || sorted[1].ID != "b" || sorted[2].ID != "c" {
		t.Errorf("equal timestamps must keep their order, got %s %s %s",
			sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestExportCSV(t *testing.T) {
	txs := tradeLog(
		trade("t1", "BTCUSDT", Buy, "0.1", "50000"),
		trade("t2", "BTCUSDT", Sell, "0.05", "60000.5"),
	)

	var b strings.Builder
	if err := ExportCSV(&b, txs); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want 3", len(records))
	}

	wantHeader := []string{"id", "symbol", "order_type", "quantity", "price", "total_value", "timestamp"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	row := records[1]
	if row[0] != "t1" || row[1] != "BTCUSDT" || row[2] != "BUY" {
		t.Errorf("row 1 = %v", row)
	}
	if row[3] != "0.1" || row[4] != "50000" || row[5] != "5000" {
		t.Errorf("row 1 amounts = %q %q %q, want exact decimal strings", row[3], row[4], row[5])
	}
	if _, err := time.Parse(time.RFC3339Nano, row[6]); err != nil {
		t.Errorf("row 1 timestamp %q is not RFC 3339: %v", row[6], err)
	}

	row = records[2]
	if row[2] != "SELL" || row[3] != "0.05" || row[4] != "60000.5" || row[5] != "3000.025" {
		t.Errorf("row 2 = %v", row)
	}
}

func TestExportCSVEmpty(t *testing.T) {
	var b strings.Builder
	if err := ExportCSV(&b, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export should be header only, got %d lines", len(lines))
	}
}
