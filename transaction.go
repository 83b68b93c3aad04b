package papertrade

import (
	"time"

	"github.com/google/uuid"
)

// Side identifies the direction of an executed order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a side string as it appears in exports and snapshots.
func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), true
	}
	return "", false
}

// Transaction is an immutable record of one executed order. It is created
// exactly once per successful execution and appended to the portfolio's
// log; it is never mutated afterwards.
type Transaction struct {
	ID        string
	Symbol    string
	Side      Side
	Quantity  Quantity
	Price     Money // execution price per unit
	Timestamp time.Time
}

// NewTransaction creates a transaction record stamped with a fresh unique
// ID and the current time.
func NewTransaction(symbol string, side Side, quantity Quantity, price Money) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now(),
	}
}

// TotalValue returns quantity × price.
func (t Transaction) TotalValue() Money {
	return t.Price.Mul(t.Quantity)
}

func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Symbol == o.Symbol &&
		t.Side == o.Side &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Timestamp.Equal(o.Timestamp)
}
