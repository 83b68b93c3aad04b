package papertrade

import (
	"fmt"
	"time"
)

// The snapshot types mirror the persisted JSON layout. The persistence
// boundary is text based: every decimal is rendered as its exact string
// form and every timestamp as RFC 3339, so a snapshot round-trips without
// loss through any JSON store.

// PositionState is the flattened form of one Position.
type PositionState struct {
	Symbol      string `json:"symbol"`
	Quantity    string `json:"quantity"`
	AverageCost string `json:"average_cost"`
}

// TransactionState is the flattened form of one Transaction.
type TransactionState struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	OrderType string `json:"order_type"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}

// PortfolioState is the flattened form of a whole portfolio.
type PortfolioState struct {
	Balance        string                   `json:"balance"`
	InitialBalance string                   `json:"initial_balance"`
	Currency       string                   `json:"currency"`
	Positions      map[string]PositionState `json:"positions"`
	Transactions   []TransactionState       `json:"transactions"`
	CreatedAt      string                   `json:"created_at"`
}

// Snapshot flattens the portfolio into its storage form.
func Snapshot(p *Portfolio) *PortfolioState {
	state := &PortfolioState{
		Balance:        p.Balance().Amount(),
		InitialBalance: p.InitialBalance().Amount(),
		Currency:       p.Balance().Currency(),
		Positions:      make(map[string]PositionState),
		Transactions:   make([]TransactionState, 0),
		CreatedAt:      time.Now().Format(time.RFC3339Nano),
	}
	for sym, pos := range p.Positions() {
		state.Positions[sym] = PositionState{
			Symbol:      pos.Symbol,
			Quantity:    pos.Quantity.String(),
			AverageCost: pos.AverageCost.Amount(),
		}
	}
	for _, tx := range p.Transactions() {
		state.Transactions = append(state.Transactions, TransactionState{
			ID:        tx.ID,
			Symbol:    tx.Symbol,
			OrderType: string(tx.Side),
			Quantity:  tx.Quantity.String(),
			Price:     tx.Price.Amount(),
			Timestamp: tx.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return state
}

// Restore rebuilds a portfolio from a snapshot by direct state injection:
// positions and transactions are installed verbatim, not replayed through
// the execution path, since the data is assumed already consistent.
//
// Restore fails on any missing or unparsable field rather than producing a
// partially populated portfolio.
func Restore(state *PortfolioState) (*Portfolio, error) {
	if state.Balance == "" || state.InitialBalance == "" {
		return nil, fmt.Errorf("portfolio snapshot is missing balance fields")
	}
	currency := state.Currency

	initial, err := ParseMoney(state.InitialBalance, currency)
	if err != nil {
		return nil, fmt.Errorf("invalid initial_balance %q: %w", state.InitialBalance, err)
	}
	balance, err := ParseMoney(state.Balance, currency)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", state.Balance, err)
	}

	positions := make(map[string]Position, len(state.Positions))
	for sym, ps := range state.Positions {
		if ps.Symbol == "" {
			return nil, fmt.Errorf("position %q is missing its symbol", sym)
		}
		quantity, err := ParseQuantity(ps.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for position %q: %w", sym, err)
		}
		averageCost, err := ParseMoney(ps.AverageCost, currency)
		if err != nil {
			return nil, fmt.Errorf("invalid average_cost for position %q: %w", sym, err)
		}
		positions[sym] = Position{Symbol: ps.Symbol, Quantity: quantity, AverageCost: averageCost}
	}

	transactions := make([]Transaction, 0, len(state.Transactions))
	for i, ts := range state.Transactions {
		if ts.ID == "" || ts.Symbol == "" {
			return nil, fmt.Errorf("transaction %d is missing id or symbol", i)
		}
		side, ok := ParseSide(ts.OrderType)
		if !ok {
			return nil, fmt.Errorf("invalid order_type %q for transaction %s", ts.OrderType, ts.ID)
		}
		quantity, err := ParseQuantity(ts.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for transaction %s: %w", ts.ID, err)
		}
		price, err := ParseMoney(ts.Price, currency)
		if err != nil {
			return nil, fmt.Errorf("invalid price for transaction %s: %w", ts.ID, err)
		}
		timestamp, err := time.Parse(time.RFC3339Nano, ts.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp for transaction %s: %w", ts.ID, err)
		}
		transactions = append(transactions, Transaction{
			ID:        ts.ID,
			Symbol:    ts.Symbol,
			Side:      side,
			Quantity:  quantity,
			Price:     price,
			Timestamp: timestamp,
		})
	}

	p := NewPortfolio(initial)
	p.restore(balance, positions, transactions)
	return p, nil
}
