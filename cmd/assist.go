package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `ppt assist [<question>]

  Start an interactive session with the AI assistant. It can read the
  portfolio and search for market news. Requires Gemini credentials in
  the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prices := func() map[string]papertrade.Money {
		cache, err := refreshPrices(ctx)
		if err != nil {
			return map[string]papertrade.Money{}
		}
		return cache.Snapshot()
	}

	trader := agent.NewTrader()
	analyst := agent.NewAnalyst(LoadPortfolio, prices)
	a := agent.New(os.Stdout, os.Stdin, trader, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
