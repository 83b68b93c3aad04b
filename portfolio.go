package papertrade

import (
	"fmt"
	"sync"
)

// Portfolio is the single source of truth for cash, holdings and trade
// history. It implements the weighted-average-cost accounting method: each
// buy recomputes the position's average cost, each sell leaves the average
// cost of the remaining lot untouched.
//
// ExecuteBuy and ExecuteSell are unchecked: they do not validate balance or
// holdings and will drive the balance negative if called with an oversized
// buy. OrderService is the validating layer and the only sanctioned entry
// point for user-initiated orders; the unchecked layer exists for it and
// for state restoration.
//
// All methods are safe for concurrent use.
type Portfolio struct {
	mu             sync.Mutex
	balance        Money
	initialBalance Money
	positions      map[string]Position
	transactions   []Transaction
}

// NewPortfolio creates an empty portfolio holding the given initial cash
// balance.
func NewPortfolio(initialBalance Money) *Portfolio {
	return &Portfolio{
		balance:        initialBalance,
		initialBalance: initialBalance,
		positions:      make(map[string]Position),
		transactions:   make([]Transaction, 0),
	}
}

// Balance returns the current cash balance.
func (p *Portfolio) Balance() Money {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance
}

// InitialBalance returns the balance the portfolio was created or last
// reset with.
func (p *Portfolio) InitialBalance() Money {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialBalance
}

// Positions returns a copy of all open positions keyed by symbol. Mutating
// the returned map does not affect the portfolio.
func (p *Portfolio) Positions() map[string]Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Position, len(p.positions))
	for sym, pos := range p.positions {
		out[sym] = pos
	}
	return out
}

// Position returns the open position for symbol, if any.
func (p *Portfolio) Position(symbol string) (Position, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos, ok := p.positions[symbol]
	return pos, ok
}

// PortfolioValue returns cash plus the market value of every open position
// at the given prices. Positions whose symbol is missing from prices are
// valued at cost basis instead of failing.
func (p *Portfolio) PortfolioValue(prices map[string]Money) Money {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := p.balance
	for sym, pos := range p.positions {
		if price, ok := prices[sym]; ok {
			total = total.Add(pos.MarketValue(price))
		} else {
			total = total.Add(pos.TotalCost())
		}
	}
	return total
}

// UnrealizedPnL returns the paper profit or loss on the symbol's open
// position at the given price, or zero if no position is held.
func (p *Portfolio) UnrealizedPnL(symbol string, price Money) Money {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos, ok := p.positions[symbol]
	if !ok {
		return M(0, p.balance.Currency())
	}
	return pos.UnrealizedPnL(price)
}

// ExecuteBuy unconditionally debits quantity × price from the balance and
// adds the quantity to the symbol's position, recomputing its weighted
// average cost. The first buy of a symbol creates the position at the
// execution price.
//
// ExecuteBuy is unchecked: the caller must have validated that the balance
// is sufficient. It panics on non-positive quantity or price, which
// indicates a bug upstream.
func (p *Portfolio) ExecuteBuy(symbol string, quantity Quantity, price Money) Transaction {
	if !quantity.IsPositive() || !price.IsPositive() {
		panic(fmt.Sprintf("papertrade: buy %s with non-positive quantity %s or price %s", symbol, quantity, price.Amount()))
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	orderValue := price.Mul(quantity)
	p.balance = p.balance.Sub(orderValue)

	if existing, ok := p.positions[symbol]; ok {
		totalQuantity := existing.Quantity.Add(quantity)
		totalCost := existing.TotalCost().Add(orderValue)
		p.positions[symbol] = Position{
			Symbol:      symbol,
			Quantity:    totalQuantity,
			AverageCost: totalCost.Div(totalQuantity),
		}
	} else {
		p.positions[symbol] = Position{
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: price,
		}
	}

	tx := NewTransaction(symbol, Buy, quantity, price)
	p.transactions = append(p.transactions, tx)
	return tx
}

// ExecuteSell unconditionally credits quantity × price to the balance and
// removes the quantity from the symbol's position. The average cost of the
// remaining lot is untouched; a quantity of exactly zero removes the
// position entirely.
//
// ExecuteSell is unchecked: the caller must have validated that the
// position covers the quantity. It panics when no position is held for
// symbol or on non-positive quantity or price, which indicates a bug
// upstream.
func (p *Portfolio) ExecuteSell(symbol string, quantity Quantity, price Money) Transaction {
	if !quantity.IsPositive() || !price.IsPositive() {
		panic(fmt.Sprintf("papertrade: sell %s with non-positive quantity %s or price %s", symbol, quantity, price.Amount()))
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[symbol]
	if !ok {
		panic("papertrade: sell of unheld symbol " + symbol)
	}

	p.balance = p.balance.Add(price.Mul(quantity))

	remaining := pos.Quantity.Sub(quantity)
	if remaining.IsZero() {
		delete(p.positions, symbol)
	} else {
		p.positions[symbol] = Position{
			Symbol:      symbol,
			Quantity:    remaining,
			AverageCost: pos.AverageCost,
		}
	}

	tx := NewTransaction(symbol, Sell, quantity, price)
	p.transactions = append(p.transactions, tx)
	return tx
}

// Reset discards every position and transaction and sets both the live and
// the initial balance to the given value. This is a hard reset, not a
// rollback: no record of the previous state is kept.
func (p *Portfolio) Reset(initialBalance Money) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance = initialBalance
	p.initialBalance = initialBalance
	p.positions = make(map[string]Position)
	p.transactions = p.transactions[:0:0]
}

// Transactions returns a copy of the transaction log in insertion order,
// oldest first.
func (p *Portfolio) Transactions() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Transaction, len(p.transactions))
	copy(out, p.transactions)
	return out
}

// restore injects state directly, bypassing the execution path. It is used
// by Restore to rebuild a portfolio from a snapshot whose data is assumed
// already consistent.
func (p *Portfolio) restore(balance Money, positions map[string]Position, transactions []Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance = balance
	p.positions = positions
	p.transactions = transactions
}
