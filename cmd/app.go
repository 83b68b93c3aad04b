// Package cmd implements the CLI application to manage a paper trading
// portfolio.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them on a commander and executes the
// user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&txCmd{},
	&holdingCmd{},
	&gainsCmd{},
	&exportCmd{},
	&resetCmd{},
	&watchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok
// to load the configuration lazily into a global.

var appConfig *papertrade.Config

func config() (*papertrade.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	cfg, err := papertrade.LoadConfig()
	if err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// LoadPortfolio loads the portfolio from the configured storage.
// A missing portfolio is created fresh with the configured initial
// balance.
func LoadPortfolio() (*papertrade.Portfolio, error) {
	cfg, err := config()
	if err != nil {
		return nil, err
	}
	store, err := cfg.OpenStorage()
	if err != nil {
		return nil, err
	}

	var state papertrade.PortfolioState
	found, err := store.Load(cfg.Portfolio.Key, &state)
	if err != nil {
		return nil, fmt.Errorf("cannot load portfolio %q: %w", cfg.Portfolio.Key, err)
	}
	if !found {
		return papertrade.NewPortfolio(cfg.InitialBalance()), nil
	}
	return papertrade.Restore(&state)
}

// SavePortfolio persists the portfolio into the configured storage.
func SavePortfolio(p *papertrade.Portfolio) error {
	cfg, err := config()
	if err != nil {
		return err
	}
	store, err := cfg.OpenStorage()
	if err != nil {
		return err
	}
	if err := store.Save(cfg.Portfolio.Key, papertrade.Snapshot(p)); err != nil {
		return fmt.Errorf("cannot save portfolio %q: %w", cfg.Portfolio.Key, err)
	}
	return nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// confirm asks the user a yes/no question on the terminal.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// refreshPrices fetches the latest tickers for the configured symbols,
// plus extra ones, and returns a filled price cache.
func refreshPrices(ctx context.Context, extra ...string) (*papertrade.PriceCache, error) {
	cfg, err := config()
	if err != nil {
		return nil, err
	}

	symbols := append([]string{}, cfg.Binance.Symbols...)
	for _, s := range extra {
		s = papertrade.NormalizeSymbol(s)
		found := false
		for _, have := range symbols {
			if have == s {
				found = true
				break
			}
		}
		if !found {
			symbols = append(symbols, s)
		}
	}

	cache := papertrade.NewPriceCache()
	provider := papertrade.NewBinanceRestProvider(cfg.Binance.RestURL, cfg.Portfolio.Currency)
	if err := provider.Refresh(ctx, cache, symbols); err != nil {
		return nil, err
	}
	return cache, nil
}
