package papertrade

import (
	"sync"
	"time"
)

// PriceCache is a last-known-price map fed by whatever market data stream
// is active, plus a connectivity flag. It implements PriceSource and is
// meant to be injected into an OrderService; tests substitute a
// deterministic one.
//
// All methods are safe for concurrent use: the stream worker updates it
// while the order path reads it.
type PriceCache struct {
	mu        sync.RWMutex
	prices    map[string]Money
	updated   map[string]time.Time
	connected bool
}

// NewPriceCache creates an empty, disconnected cache.
func NewPriceCache() *PriceCache {
	return &PriceCache{
		prices:  make(map[string]Money),
		updated: make(map[string]time.Time),
	}
}

// UpdatePrice records the last known price for symbol.
func (c *PriceCache) UpdatePrice(symbol string, price Money) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[symbol] = price
	c.updated[symbol] = time.Now()
}

// SetConnected records the connectivity of the upstream feed.
func (c *PriceCache) SetConnected(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
}

// CurrentPrice implements PriceSource.
func (c *PriceCache) CurrentPrice(symbol string) (Money, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	price, ok := c.prices[symbol]
	return price, ok
}

// IsConnected implements PriceSource.
func (c *PriceCache) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// LastUpdate returns when the symbol's price was last refreshed.
func (c *PriceCache) LastUpdate(symbol string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ts, ok := c.updated[symbol]
	return ts, ok
}

// Snapshot returns a copy of the current price map, suitable for
// Portfolio.PortfolioValue.
func (c *PriceCache) Snapshot() map[string]Money {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Money, len(c.prices))
	for sym, price := range c.prices {
		out[sym] = price
	}
	return out
}
