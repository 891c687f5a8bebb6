package portfolio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"finance-app-go/pkg/logger"
)

type fakeSymbolSource struct {
	symbols []string
	err     error
}

func (f *fakeSymbolSource) ListStockSymbols(ctx context.Context) ([]string, error) {
	return f.symbols, f.err
}

type fakeQuoteFetcher struct {
	quotes map[string]decimal.Decimal
	err    error
	calls  int
}

func (f *fakeQuoteFetcher) FetchQuotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	cache := NewQuoteCache()
	cache.ReplaceAll(map[string]decimal.Decimal{"OLD": dec("1")})

	fetcher := &fakeQuoteFetcher{quotes: map[string]decimal.Decimal{"ACME": dec("12")}}
	refresher := NewRefresher(&fakeSymbolSource{symbols: []string{"ACME"}}, fetcher, cache, 0, testLogger())

	refresher.refresh()

	if _, ok := cache.Price("OLD"); ok {
		t.Fatalf("expected stale symbol dropped")
	}
	price, ok := cache.Price("ACME")
	if !ok || !price.Equal(dec("12")) {
		t.Fatalf("expected ACME at 12, got %s ok=%v", price, ok)
	}
}

func TestRefreshFailureLeavesSnapshotUntouched(t *testing.T) {
	cache := NewQuoteCache()
	cache.ReplaceAll(map[string]decimal.Decimal{"ACME": dec("12")})

	fetcher := &fakeQuoteFetcher{err: errors.New("provider down")}
	refresher := NewRefresher(&fakeSymbolSource{symbols: []string{"ACME"}}, fetcher, cache, 0, testLogger())

	refresher.refresh()

	price, ok := cache.Price("ACME")
	if !ok || !price.Equal(dec("12")) {
		t.Fatalf("expected previous snapshot kept, got %s ok=%v", price, ok)
	}
}

func TestRefreshSymbolListFailureLeavesSnapshotUntouched(t *testing.T) {
	cache := NewQuoteCache()
	cache.ReplaceAll(map[string]decimal.Decimal{"ACME": dec("12")})

	fetcher := &fakeQuoteFetcher{quotes: map[string]decimal.Decimal{}}
	refresher := NewRefresher(&fakeSymbolSource{err: errors.New("db down")}, fetcher, cache, 0, testLogger())

	refresher.refresh()

	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch after symbol list failure")
	}
	if cache.Len() != 1 {
		t.Fatalf("expected snapshot kept, got %d entries", cache.Len())
	}
}

func TestRefreshSkipsWhenNoSymbols(t *testing.T) {
	cache := NewQuoteCache()
	fetcher := &fakeQuoteFetcher{quotes: map[string]decimal.Decimal{}}
	refresher := NewRefresher(&fakeSymbolSource{}, fetcher, cache, 0, testLogger())

	refresher.refresh()

	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch without symbols")
	}
}

func TestQuoteCacheReplaceAllCopiesInput(t *testing.T) {
	cache := NewQuoteCache()
	source := map[string]decimal.Decimal{"ACME": dec("12")}
	cache.ReplaceAll(source)

	source["ACME"] = dec("99")

	price, _ := cache.Price("ACME")
	if !price.Equal(dec("12")) {
		t.Fatalf("expected cache isolated from caller map, got %s", price)
	}
}
