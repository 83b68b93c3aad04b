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

type holdingCmd struct {
	offline bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the cash balance and open positions" }
func (*holdingCmd) Usage() string {
	return `ppt holding [-offline]

  Displays the cash balance and every open position with its average
  cost and, when a market price is available, its market value and
  unrealized profit or loss.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch market prices.")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	prices := map[string]papertrade.Money{}
	if !c.offline {
		held := make([]string, 0, len(p.Positions()))
		for symbol := range p.Positions() {
			held = append(held, symbol)
		}
		cache, err := refreshPrices(ctx, held...)
		if err != nil {
			// A broken feed should not hide the positions.
			fmt.Fprintf(os.Stderr, "Warning: cannot fetch prices: %v\n", err)
		} else {
			prices = cache.Snapshot()
		}
	}

	printMarkdown(renderer.Holdings(p, prices))

	return subcommands.ExitSuccess
}
