package portfolio

import (
	"sync"

	"github.com/shopspring/decimal"
)

// QuoteCache holds the latest live prices by symbol. The refresher replaces
// the whole snapshot at once; readers between refreshes always see a
// consistent set, and a failed refresh leaves the previous snapshot intact.
type QuoteCache struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

func NewQuoteCache() *QuoteCache {
	return &QuoteCache{prices: make(map[string]decimal.Decimal)}
}

func (c *QuoteCache) Price(symbol string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	price, ok := c.prices[symbol]
	return price, ok
}

func (c *QuoteCache) ReplaceAll(prices map[string]decimal.Decimal) {
	snapshot := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		snapshot[symbol] = price
	}

	c.mu.Lock()
	c.prices = snapshot
	c.mu.Unlock()
}

func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prices)
}
