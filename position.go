package papertrade

// Position is a held quantity of one trading symbol. A position exists in
// the portfolio's map if and only if its quantity is strictly positive;
// full liquidation removes the entry.
type Position struct {
	Symbol      string
	Quantity    Quantity
	AverageCost Money // cost basis per unit, weighted average over buys
}

// TotalCost returns quantity × average cost, the position's cost basis.
func (p Position) TotalCost() Money {
	return p.AverageCost.Mul(p.Quantity)
}

// MarketValue returns quantity × price.
func (p Position) MarketValue(price Money) Money {
	return price.Mul(p.Quantity)
}

// UnrealizedPnL returns the paper profit or loss of the position at the
// given market price.
func (p Position) UnrealizedPnL(price Money) Money {
	return p.MarketValue(price).Sub(p.TotalCost())
}
