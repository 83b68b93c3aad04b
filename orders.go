package papertrade

import "fmt"

// OrderStatus is the terminal state of a submitted order.
type OrderStatus int

const (
	// Pending is reserved for future asynchronous flows; the current
	// OrderService never returns it.
	Pending OrderStatus = iota
	Executed
	Rejected
)

func (s OrderStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Executed:
		return "executed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RejectionReason is the enumerated cause preventing an order from
// executing. Rejections are normal business outcomes, not errors.
type RejectionReason string

const (
	InsufficientBalance  RejectionReason = "insufficient_balance"
	InsufficientHoldings RejectionReason = "insufficient_holdings"
	InvalidQuantity      RejectionReason = "invalid_quantity"
	NoPriceData          RejectionReason = "no_price_data"
)

// OrderResult is the outcome of one order submission. Transaction is set
// iff Status is Executed; Reason is set iff Status is Rejected. Message is
// always set and human readable.
type OrderResult struct {
	Status      OrderStatus
	Transaction *Transaction
	Reason      RejectionReason
	Message     string
}

// PriceSource is the market data capability the order service consumes.
// Symbols are exchange-pair identifiers normalized to uppercase with
// separators stripped ("BTCUSDT"); normalization is the caller's concern.
type PriceSource interface {
	// CurrentPrice returns the last known price for symbol, or false when
	// no price is available.
	CurrentPrice(symbol string) (Money, bool)
	// IsConnected reports whether the source is receiving live data.
	IsConnected() bool
}

// OrderService validates a buy/sell intent against the portfolio state and
// the current market price, then delegates execution to the portfolio. It
// is the only sanctioned entry point for user-initiated orders.
//
// Each submission is fully synchronous and terminal: it either executes or
// is rejected with a reason. The service holds no per-order state; callers
// resubmit explicitly if they want a retry.
type OrderService struct {
	portfolio *Portfolio
	source    PriceSource
}

// NewOrderService creates an order service trading on the given portfolio
// with prices from source.
func NewOrderService(portfolio *Portfolio, source PriceSource) *OrderService {
	return &OrderService{portfolio: portfolio, source: source}
}

// SubmitBuy validates and executes a buy of quantity units of symbol at
// the current market price.
func (s *OrderService) SubmitBuy(symbol string, quantity Quantity) OrderResult {
	if !quantity.IsPositive() {
		return OrderResult{
			Status:  Rejected,
			Reason:  InvalidQuantity,
			Message: "quantity must be greater than zero",
		}
	}

	price, ok := s.source.CurrentPrice(symbol)
	if !ok {
		return OrderResult{
			Status:  Rejected,
			Reason:  NoPriceData,
			Message: fmt.Sprintf("no price data available for %s", symbol),
		}
	}

	orderValue := price.Mul(quantity)
	balance := s.portfolio.Balance()
	if orderValue.GreaterThan(balance) {
		return OrderResult{
			Status:  Rejected,
			Reason:  InsufficientBalance,
			Message: fmt.Sprintf("insufficient balance: need %s, have %s", orderValue, balance),
		}
	}

	tx := s.portfolio.ExecuteBuy(symbol, quantity, price)
	return OrderResult{
		Status:      Executed,
		Transaction: &tx,
		Message:     fmt.Sprintf("bought %s %s at %s", quantity, symbol, price),
	}
}

// SubmitSell validates and executes a sell of quantity units of symbol at
// the current market price.
func (s *OrderService) SubmitSell(symbol string, quantity Quantity) OrderResult {
	if !quantity.IsPositive() {
		return OrderResult{
			Status:  Rejected,
			Reason:  InvalidQuantity,
			Message: "quantity must be greater than zero",
		}
	}

	price, ok := s.source.CurrentPrice(symbol)
	if !ok {
		return OrderResult{
			Status:  Rejected,
			Reason:  NoPriceData,
			Message: fmt.Sprintf("no price data available for %s", symbol),
		}
	}

	var held Quantity
	if pos, ok := s.portfolio.Position(symbol); ok {
		held = pos.Quantity
	}
	if quantity.GreaterThan(held) {
		return OrderResult{
			Status:  Rejected,
			Reason:  InsufficientHoldings,
			Message: fmt.Sprintf("insufficient holdings: need %s, have %s", quantity, held),
		}
	}

	tx := s.portfolio.ExecuteSell(symbol, quantity, price)
	return OrderResult{
		Status:      Executed,
		Transaction: &tx,
		Message:     fmt.Sprintf("sold %s %s at %s", quantity, symbol, price),
	}
}
