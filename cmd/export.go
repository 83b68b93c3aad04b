package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transaction log to CSV" }
func (*exportCmd) Usage() string {
	return `ppt export [-o <file>]

  Exports the transaction log in chronological order as CSV. Without
  -o the CSV is written to stdout.

Usage Examples:
$ ppt export -o transactions.csv

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	transactions := papertrade.SortByTimestamp(p.Transactions(), false)

	if c.output == "" {
		if err := papertrade.ExportCSV(os.Stdout, transactions); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := papertrade.ExportCSVFile(c.output, transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting transactions to %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d transactions to %s\n", len(transactions), c.output)
	return subcommands.ExitSuccess
}
