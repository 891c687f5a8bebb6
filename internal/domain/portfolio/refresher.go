package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"finance-app-go/pkg/logger"
)

type SymbolSource interface {
	ListStockSymbols(ctx context.Context) ([]string, error)
}

type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

// Refresher re-fetches live prices on a fixed schedule and swaps the quote
// snapshot in one step. A failed cycle leaves the previous snapshot in place;
// the failure is logged and never surfaced to callers.
type Refresher struct {
	symbols  SymbolSource
	fetcher  QuoteFetcher
	cache    *QuoteCache
	log      logger.Logger
	interval time.Duration
	timeout  time.Duration
	cron     *cron.Cron
}

func NewRefresher(symbols SymbolSource, fetcher QuoteFetcher, cache *QuoteCache, interval time.Duration, log logger.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{
		symbols:  symbols,
		fetcher:  fetcher,
		cache:    cache,
		log:      log,
		interval: interval,
		timeout:  interval,
		cron:     cron.New(),
	}
}

func (r *Refresher) Start() error {
	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(spec, r.refresh); err != nil {
		return fmt.Errorf("schedule price refresh: %w", err)
	}
	r.cron.Start()
	r.log.Info("portfolio: price refresher started", "interval", r.interval.String())

	// Warm the snapshot so the first summary does not wait a full interval.
	go r.refresh()
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh to finish.
func (r *Refresher) Stop(ctx context.Context) error {
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	symbols, err := r.symbols.ListStockSymbols(ctx)
	if err != nil {
		r.log.BusinessError("portfolio: list symbols failed", err)
		return
	}
	if len(symbols) == 0 {
		return
	}

	quotes, err := r.fetcher.FetchQuotes(ctx, symbols)
	if err != nil {
		r.log.BusinessError("portfolio: price refresh failed", err, "symbols", len(symbols))
		return
	}

	r.cache.ReplaceAll(quotes)
	r.log.Debug("portfolio: price snapshot replaced", "quotes", len(quotes))
}
