package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	symbol  string
	side    string
	head    int
	tail    int
	reverse bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the executed transactions" }
func (*txCmd) Usage() string {
	return `ppt tx [-s <symbol>] [-side <side>] [-head <n> | -tail <n>] [-r]

  Lists executed transactions in chronological order, with options for
  filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Show only transactions for this symbol.")
	f.StringVar(&c.side, "side", "", "Show only BUY or SELL transactions.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
	f.BoolVar(&c.reverse, "r", false, "Most recent first.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	var side papertrade.Side
	if c.side != "" {
		var ok bool
		side, ok = papertrade.ParseSide(strings.ToUpper(c.side))
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown side %q (want buy or sell).\n", c.side)
			return subcommands.ExitUsageError
		}
	}
	symbol := ""
	if c.symbol != "" {
		symbol = papertrade.NormalizeSymbol(c.symbol)
	}

	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	var transactions []papertrade.Transaction
	for _, tx := range papertrade.SortByTimestamp(p.Transactions(), c.reverse) {
		if symbol != "" && tx.Symbol != symbol {
			continue
		}
		if side != "" && tx.Side != side {
			continue
		}
		transactions = append(transactions, tx)
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))

	return subcommands.ExitSuccess
}
