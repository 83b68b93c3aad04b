package papertrade

import (
	"testing"
)

// staticPrices is a PriceSource serving a fixed price table.
type staticPrices struct {
	prices    map[string]Money
	connected bool
}

func (s staticPrices) CurrentPrice(symbol string) (Money, bool) {
	m, ok := s.prices[symbol]
	return m, ok
}
func (s staticPrices) IsConnected() bool { return s.connected }

func newTestService(balance string) (*OrderService, *Portfolio) {
	p := NewPortfolio(usd(balance))
	source := staticPrices{
		prices: map[string]Money{
			"BTCUSDT": usd("50000"),
			"ETHUSDT": usd("3000"),
		},
		connected: true,
	}
	return NewOrderService(p, source), p
}

func TestSubmitBuy(t *testing.T) {
	service, p := newTestService("10000")

	result := service.SubmitBuy("BTCUSDT", qty("0.1"))

	if result.Status != Executed {
		t.Fatalf("status = %s, want executed (%s)", result.Status, result.Message)
	}
	if result.Transaction == nil {
		t.Fatal("executed order has no transaction")
	}
	if !result.Transaction.Price.Equal(usd("50000")) {
		t.Errorf("execution price = %s, want 50000", result.Transaction.Price.Amount())
	}
	if got := p.Balance(); !got.Equal(usd("5000")) {
		t.Errorf("balance = %s, want 5000", got.Amount())
	}
}

func TestSubmitBuyRejections(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		quantity Quantity
		reason   RejectionReason
	}{
		{"zero quantity", "BTCUSDT", Q(0), InvalidQuantity},
		{"negative quantity", "BTCUSDT", qty("-0.1"), InvalidQuantity},
		{"unknown symbol", "DOGEUSDT", qty("1"), NoPriceData},
		{"too expensive", "BTCUSDT", qty("1"), InsufficientBalance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, p := newTestService("10000")

			result := service.SubmitBuy(tc.symbol, tc.quantity)

			if result.Status != Rejected {
				t.Fatalf("status = %s, want rejected", result.Status)
			}
			if result.Reason != tc.reason {
				t.Errorf("reason = %s, want %s", result.Reason, tc.reason)
			}
			if result.Transaction != nil {
				t.Error("rejected order must not carry a transaction")
			}
			if result.Message == "" {
				t.Error("rejected order must carry a message")
			}
			// A rejection leaves the portfolio untouched.
			if got := p.Balance(); !got.Equal(usd("10000")) {
				t.Errorf("balance = %s, want 10000", got.Amount())
			}
			if got := len(p.Transactions()); got != 0 {
				t.Errorf("transaction log has %d entries, want 0", got)
			}
		})
	}
}

func TestSubmitBuyExactBalance(t *testing.T) {
	// An order worth exactly the balance is allowed.
	service, p := newTestService("5000")

	result := service.SubmitBuy("BTCUSDT", qty("0.1"))

	if result.Status != Executed {
		t.Fatalf("status = %s, want executed (%s)", result.Status, result.Message)
	}
	if got := p.Balance(); !got.IsZero() {
		t.Errorf("balance = %s, want 0", got.Amount())
	}
}

func TestSubmitSell(t *testing.T) {
	service, p := newTestService("10000")
	p.ExecuteBuy("ETHUSDT", qty("2"), usd("2500"))

	result := service.SubmitSell("ETHUSDT", qty("1"))

	if result.Status != Executed {
		t.Fatalf("status = %s, want executed (%s)", result.Status, result.Message)
	}
	// 10000 - 5000 + 3000 = 8000
	if got := p.Balance(); !got.Equal(usd("8000")) {
		t.Errorf("balance = %s, want 8000", got.Amount())
	}
	pos, _ := p.Position("ETHUSDT")
	if !pos.Quantity.Equal(qty("1")) {
		t.Errorf("remaining quantity = %s, want 1", pos.Quantity)
	}
}

func TestSubmitSellRejections(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		quantity Quantity
		reason   RejectionReason
	}{
		{"zero quantity", "ETHUSDT", Q(0), InvalidQuantity},
		{"unknown symbol", "DOGEUSDT", qty("1"), NoPriceData},
		{"unheld symbol", "BTCUSDT", qty("1"), InsufficientHoldings},
		{"oversized", "ETHUSDT", qty("3"), InsufficientHoldings},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, p := newTestService("10000")
			p.ExecuteBuy("ETHUSDT", qty("2"), usd("2500"))
			balanceBefore := p.Balance()

			result := service.SubmitSell(tc.symbol, tc.quantity)

			if result.Status != Rejected {
				t.Fatalf("status = %s, want rejected", result.Status)
			}
			if result.Reason != tc.reason {
				t.Errorf("reason = %s, want %s", result.Reason, tc.reason)
			}
			if got := p.Balance(); !got.Equal(balanceBefore) {
				t.Errorf("balance = %s, want %s", got.Amount(), balanceBefore.Amount())
			}
		})
	}
}

func TestSubmitSellWholePosition(t *testing.T) {
	service, p := newTestService("10000")
	p.ExecuteBuy("ETHUSDT", qty("2"), usd("2500"))

	result := service.SubmitSell("ETHUSDT", qty("2"))

	if result.Status != Executed {
		t.Fatalf("status = %s, want executed (%s)", result.Status, result.Message)
	}
	if _, ok := p.Position("ETHUSDT"); ok {
		t.Error("position should be closed after selling everything")
	}
}
