package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type buyCmd struct {
	symbol   string
	quantity string
	yes      bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a quantity of a symbol at the market price" }
func (*buyCmd) Usage() string {
	return `ppt buy -s <symbol> -q <quantity> [-y]

  Places a paper buy order at the current market price. The order is
  rejected when the cash balance cannot cover it.

Usage Examples:
$ ppt buy -s BTCUSDT -q 0.1

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to buy, e.g. BTCUSDT.")
	f.StringVar(&c.quantity, "q", "", "Quantity to buy.")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation on large orders.")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -q are required.")
		return subcommands.ExitUsageError
	}

	quantity, err := papertrade.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	symbol := papertrade.NormalizeSymbol(c.symbol)

	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	cache, err := refreshPrices(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.yes {
		if price, ok := cache.CurrentPrice(symbol); ok {
			if !confirmLargeOrder(p, quantity, price) {
				fmt.Fprintln(os.Stderr, "Order cancelled.")
				return subcommands.ExitSuccess
			}
		}
	}

	service := papertrade.NewOrderService(p, cache)
	result := service.SubmitBuy(symbol, quantity)

	printMarkdown(renderer.OrderResult(result))

	if result.Status != papertrade.Executed {
		return subcommands.ExitFailure
	}
	if err := SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// confirmLargeOrder asks for confirmation when the order value exceeds
// the configured fraction of the cash balance.
func confirmLargeOrder(p *papertrade.Portfolio, quantity papertrade.Quantity, price papertrade.Money) bool {
	cfg, err := config()
	if err != nil {
		return true
	}
	fraction, err := papertrade.ParseQuantity(cfg.Portfolio.ConfirmFraction)
	if err != nil {
		return true
	}

	cost := price.Mul(quantity)
	threshold := p.Balance().Mul(fraction)
	if !cost.GreaterThan(threshold) {
		return true
	}
	percent := fraction.Mul(papertrade.Q(100))
	return confirm(fmt.Sprintf("This order is worth %s, more than %s%% of your balance. Proceed?",
		cost, percent))
}
