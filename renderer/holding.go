package renderer

import (
	"fmt"
	"sort"

	"github.com/etnz/papertrade"
)

// Holdings renders the portfolio's cash, positions and total value as a
// markdown report. Positions without a price in prices are valued at cost
// basis, matching PortfolioValue.
func Holdings(p *papertrade.Portfolio, prices map[string]papertrade.Money) string {
	positions := p.Positions()

	symbols := make([]string, 0, len(positions))
	for sym := range positions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	out := "# Holdings\n\n"
	out += fmt.Sprintf("Cash: %s\n\n", p.Balance())

	if len(symbols) > 0 {
		var t table
		t.header("Symbol", "Quantity", "Avg Cost", "Cost Basis", "Market Value", "Unrealized PnL")
		for _, sym := range symbols {
			pos := positions[sym]
			value, pnl := pos.TotalCost().String(), "-"
			if price, ok := prices[sym]; ok {
				value = pos.MarketValue(price).String()
				pnl = pos.UnrealizedPnL(price).SignedString()
			}
			t.row(sym, pos.Quantity.String(), pos.AverageCost.String(), pos.TotalCost().String(), value, pnl)
		}
		out += t.String() + "\n"
	}

	out += fmt.Sprintf("Total portfolio value: %s\n", p.PortfolioValue(prices))
	return out
}
