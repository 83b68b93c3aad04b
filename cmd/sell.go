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

type sellCmd struct {
	symbol   string
	quantity string
	all      bool
	yes      bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a quantity of a held symbol at the market price" }
func (*sellCmd) Usage() string {
	return `ppt sell -s <symbol> (-q <quantity> | -all) [-y]

  Places a paper sell order at the current market price. The order is
  rejected when the held quantity is not sufficient.

Usage Examples:
$ ppt sell -s BTCUSDT -q 0.05
$ ppt sell -s BTCUSDT -all

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to sell, e.g. BTCUSDT.")
	f.StringVar(&c.quantity, "q", "", "Quantity to sell.")
	f.BoolVar(&c.all, "all", false, "Sell the whole position.")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation on large orders.")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required.")
		return subcommands.ExitUsageError
	}
	if (c.quantity == "") == !c.all {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -q and -all is required.")
		return subcommands.ExitUsageError
	}
	symbol := papertrade.NormalizeSymbol(c.symbol)

	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	var quantity papertrade.Quantity
	if c.all {
		position, held := p.Position(symbol)
		if !held {
			fmt.Fprintf(os.Stderr, "Error: no position in %s to sell.\n", symbol)
			return subcommands.ExitFailure
		}
		quantity = position.Quantity
	} else {
		quantity, err = papertrade.ParseQuantity(c.quantity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
			return subcommands.ExitUsageError
		}
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
	result := service.SubmitSell(symbol, quantity)

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
