package papertrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultBinanceURL is the public spot REST endpoint.
const DefaultBinanceURL = "https://api.binance.com"

// NormalizeSymbol turns a user-supplied pair like "btc/usdt" or "BTC-USDT"
// into the exchange form "BTCUSDT". The ledger core never normalizes;
// every market data entry point does.
func NormalizeSymbol(s string) string {
	s = strings.NewReplacer("/", "", "-", "", " ", "").Replace(s)
	return strings.ToUpper(s)
}

// Ticker is one 24hr ticker reading for a symbol. Prices are exact
// decimals parsed from the exchange's string encoding.
type Ticker struct {
	Symbol    string
	Last      decimal.Decimal
	ChangePct decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Volume    decimal.Decimal
}

// BinanceRestProvider fetches tickers from the Binance spot REST API. It
// is the on-demand counterpart to the streaming client: the watch loop
// uses it to seed the price cache before the stream delivers its first
// tick, and the buy/sell commands use it for a fresh quote.
//
// Requests are rate limited; Binance weighs the 24hr ticker heavily.
type BinanceRestProvider struct {
	base     string
	currency string
	client   *http.Client
	limiter  *rate.Limiter
	log      *logrus.Entry
}

// NewBinanceRestProvider creates a provider against base (DefaultBinanceURL
// if empty), quoting prices in the given currency.
func NewBinanceRestProvider(base, currency string) *BinanceRestProvider {
	if base == "" {
		base = DefaultBinanceURL
	}
	return &BinanceRestProvider{
		base:     base,
		currency: currency,
		client:   new(http.Client),
		limiter:  rate.NewLimiter(rate.Limit(5), 10),
		log:      logrus.WithField("component", "binance-rest"),
	}
}

// FetchTicker returns the 24hr ticker for one normalized symbol.
func (p *BinanceRestProvider) FetchTicker(ctx context.Context, symbol string) (Ticker, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return Ticker{}, err
	}

	addr := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", p.base, url.QueryEscape(symbol))
	var jobj any
	if err := jwget(ctx, p.client, addr, &jobj); err != nil {
		return Ticker{}, fmt.Errorf("cannot fetch ticker for %s: %w", symbol, err)
	}

	t := Ticker{Symbol: symbol}
	fields := []struct {
		path string
		dst  *decimal.Decimal
	}{
		{"$.lastPrice", &t.Last},
		{"$.priceChangePercent", &t.ChangePct},
		{"$.highPrice", &t.High},
		{"$.lowPrice", &t.Low},
		{"$.volume", &t.Volume},
	}
	for _, f := range fields {
		jval, err := jsonpath.Get(f.path, jobj)
		if err != nil {
			return Ticker{}, fmt.Errorf("cannot parse ticker for %s: %q %w", symbol, f.path, err)
		}
		s, ok := jval.(string)
		if !ok {
			return Ticker{}, fmt.Errorf("cannot parse ticker for %s: %q is not a string: %v", symbol, f.path, jval)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Ticker{}, fmt.Errorf("cannot parse ticker for %s: %q: %w", symbol, f.path, err)
		}
		*f.dst = d
	}
	return t, nil
}

// Refresh fetches every symbol and feeds the last prices into the cache.
// Symbols that fail are logged and skipped; Refresh errors only when no
// symbol could be fetched.
func (p *BinanceRestProvider) Refresh(ctx context.Context, cache *PriceCache, symbols []string) error {
	var lastErr error
	fetched := 0
	for _, sym := range symbols {
		sym = NormalizeSymbol(sym)
		t, err := p.FetchTicker(ctx, sym)
		if err != nil {
			p.log.WithError(err).WithField("symbol", sym).Warn("ticker fetch failed")
			lastErr = err
			continue
		}
		cache.UpdatePrice(sym, M(t.Last, p.currency))
		fetched++
	}
	if fetched == 0 && lastErr != nil {
		return lastErr
	}
	cache.SetConnected(fetched > 0)
	return nil
}
