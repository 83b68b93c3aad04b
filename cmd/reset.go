package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

type resetCmd struct {
	balance string
	yes     bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "start over with a fresh portfolio" }
func (*resetCmd) Usage() string {
	return `ppt reset [-balance <amount>] [-y]

  Deletes the stored portfolio and recreates it with the given initial
  balance. There is no undo.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.balance, "balance", "", "Initial balance of the new portfolio. Defaults to the configured one.")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	balance := cfg.InitialBalance()
	if c.balance != "" {
		balance, err = papertrade.ParseMoney(c.balance, cfg.Portfolio.Currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	if !c.yes && !confirm("This deletes the portfolio and all its transactions. Proceed?") {
		fmt.Fprintln(os.Stderr, "Reset cancelled.")
		return subcommands.ExitSuccess
	}

	store, err := cfg.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Delete(cfg.Portfolio.Key); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	p := papertrade.NewPortfolio(balance)
	if err := SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Portfolio reset with a balance of %s\n", balance)
	return subcommands.ExitSuccess
}
