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

type gainsCmd struct{}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis" }
func (*gainsCmd) Usage() string {
	return `ppt gains

  Replays the transaction log and displays realized performance:
  closed trades, win rate, realized profit and loss, traded volume.
`
}

func (*gainsCmd) SetFlags(f *flag.FlagSet) {}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	metrics := papertrade.Metrics(p.Transactions())
	printMarkdown(renderer.Metrics(metrics))

	return subcommands.ExitSuccess
}
