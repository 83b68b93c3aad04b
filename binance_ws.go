package papertrade

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultBinanceStreamURL is the public combined stream endpoint.
const DefaultBinanceStreamURL = "wss://stream.binance.com:9443"

// BinanceStream subscribes to the combined @ticker stream for a set of
// symbols and feeds every tick into a PriceCache. It owns the cache's
// connectivity flag: true while a connection is up, false otherwise.
type BinanceStream struct {
	cache    *PriceCache
	base     string
	currency string
	symbols  []string
	log      *logrus.Entry
}

// NewBinanceStream creates a stream client against base
// (DefaultBinanceStreamURL if empty), quoting prices in the given
// currency.
func NewBinanceStream(cache *PriceCache, base, currency string, symbols ...string) *BinanceStream {
	if base == "" {
		base = DefaultBinanceStreamURL
	}
	normalized := make([]string, len(symbols))
	for i, s := range symbols {
		normalized[i] = NormalizeSymbol(s)
	}
	return &BinanceStream{
		cache:    cache,
		base:     base,
		currency: currency,
		symbols:  normalized,
		log:      logrus.WithField("component", "binance-stream"),
	}
}

// streamURL builds the combined stream address, e.g.
// wss://stream.binance.com:9443/stream?streams=btcusdt@ticker/ethusdt@ticker
func (s *BinanceStream) streamURL() string {
	streams := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		streams[i] = strings.ToLower(sym) + "@ticker"
	}
	return s.base + "/stream?streams=" + strings.Join(streams, "/")
}

// Run connects and pumps ticks into the cache until ctx is done,
// reconnecting with exponential backoff after any failure.
func (s *BinanceStream) Run(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = time.Minute

	for {
		err := s.pump(ctx)
		s.cache.SetConnected(false)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.WithError(err).Warnf("stream disconnected, reconnecting in %s", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// pump runs one connection until it fails or ctx is done.
func (s *BinanceStream) pump(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("cannot dial %s: %w", s.base, err)
	}
	defer conn.Close()

	s.cache.SetConnected(true)
	s.log.WithField("symbols", s.symbols).Info("stream connected")

	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := s.handleMessage(message); err != nil {
			s.log.WithError(err).Debug("skipping malformed tick")
		}
	}
}

// handleMessage parses one combined-stream envelope and updates the cache.
func (s *BinanceStream) handleMessage(message []byte) error {
	var envelope struct {
		Data struct {
			Symbol string `json:"s"`
			Last   string `json:"c"`
		} `json:"data"`
	}
	if err := json.Unmarshal(message, &envelope); err != nil {
		return err
	}
	if envelope.Data.Symbol == "" || envelope.Data.Last == "" {
		return fmt.Errorf("tick without symbol or price")
	}
	last, err := decimal.NewFromString(envelope.Data.Last)
	if err != nil {
		return fmt.Errorf("invalid price %q for %s: %w", envelope.Data.Last, envelope.Data.Symbol, err)
	}
	s.cache.UpdatePrice(NormalizeSymbol(envelope.Data.Symbol), M(last, s.currency))
	return nil
}
