package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type watchCmd struct {
	interval time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow live prices and the portfolio value" }
func (*watchCmd) Usage() string {
	return `ppt watch [-n <interval>]

  Subscribes to the live market data stream and periodically redisplays
  the holdings with their current market value. Stop with Ctrl+C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "n", 0, "Refresh interval. Defaults to the configured poll interval.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	interval := c.interval
	if interval <= 0 {
		interval = cfg.Binance.Poll
	}

	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	symbols := append([]string{}, cfg.Binance.Symbols...)
	for symbol := range p.Positions() {
		found := false
		for _, have := range symbols {
			if have == symbol {
				found = true
				break
			}
		}
		if !found {
			symbols = append(symbols, symbol)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cache := papertrade.NewPriceCache()

	// Seed the cache over REST so the first display is not empty.
	provider := papertrade.NewBinanceRestProvider(cfg.Binance.RestURL, cfg.Portfolio.Currency)
	if err := provider.Refresh(ctx, cache, symbols); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot seed prices: %v\n", err)
	}

	stream := papertrade.NewBinanceStream(cache, cfg.Binance.StreamURL, cfg.Portfolio.Currency, symbols...)
	go func() {
		if err := stream.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Stream stopped: %v\n", err)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		printMarkdown(renderer.Holdings(p, cache.Snapshot()))
		if !cache.IsConnected() {
			fmt.Fprintln(os.Stderr, "(stream disconnected, prices may be stale)")
		}

		select {
		case <-ctx.Done():
			fmt.Println()
			return subcommands.ExitSuccess
		case <-ticker.C:
		}
	}
}
