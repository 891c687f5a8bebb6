package portfolio

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"finance-app-go/internal/domain/assets"
)

const averagePriceScale = 8

type AssetSource interface {
	ListAssets(ctx context.Context, userID string, filter assets.ListFilter) ([]assets.Asset, int64, error)
}

type QuoteSource interface {
	Price(symbol string) (decimal.Decimal, bool)
}

type Service struct {
	assets AssetSource
	quotes QuoteSource
}

func NewService(assetSource AssetSource, quotes QuoteSource) *Service {
	return &Service{assets: assetSource, quotes: quotes}
}

// Summary reconciles the user's stored assets into two market views. Stocks
// merge by case-insensitive name within a market; net worth is the sum of the
// market's stock worth and bank balances, never crossing markets.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	items, _, err := s.assets.ListAssets(ctx, userID, assets.ListFilter{})
	if err != nil {
		return nil, err
	}

	india := newBuilder(MarketIndia)
	europe := newBuilder(MarketEurope)

	for i := range items {
		asset := &items[i]
		builder := europe
		if MarketFor(asset.Currency) == MarketIndia {
			builder = india
		}

		switch asset.Kind {
		case assets.KindStock:
			builder.addStock(asset)
		case assets.KindBankAccount:
			builder.addBankAccount(asset)
		}
	}

	return &Summary{
		India:  india.build(s.quotes),
		Europe: europe.build(s.quotes),
	}, nil
}

type marketBuilder struct {
	market    Market
	positions map[string]*StockPosition
	order     []string
	banks     []BankHolding
}

func newBuilder(market Market) *marketBuilder {
	return &marketBuilder{
		market:    market,
		positions: make(map[string]*StockPosition),
	}
}

func (b *marketBuilder) addStock(asset *assets.Asset) {
	details := asset.Stock
	if details == nil {
		return
	}

	key := strings.ToLower(strings.TrimSpace(asset.Name))
	position, ok := b.positions[key]
	if !ok {
		b.positions[key] = &StockPosition{
			Name:          asset.Name,
			Symbol:        details.Symbol,
			Currency:      asset.Currency,
			Quantity:      details.Quantity,
			TotalInvested: details.TotalInvested,
		}
		b.order = append(b.order, key)
		return
	}

	// Merge: quantities and invested totals sum; the average price is
	// recomputed from the merged totals, not averaged pairwise.
	position.Quantity = position.Quantity.Add(details.Quantity)
	position.TotalInvested = position.TotalInvested.Add(details.TotalInvested)
	if position.Symbol == "" {
		position.Symbol = details.Symbol
	}
}

func (b *marketBuilder) addBankAccount(asset *assets.Asset) {
	details := asset.BankAccount
	if details == nil {
		return
	}
	b.banks = append(b.banks, BankHolding{
		Name:     asset.Name,
		BankName: details.BankName,
		Currency: asset.Currency,
		Balance:  details.Balance,
	})
}

func (b *marketBuilder) build(quotes QuoteSource) MarketSummary {
	summary := MarketSummary{
		Market:       b.market,
		Stocks:       make([]StockPosition, 0, len(b.order)),
		BankAccounts: b.banks,
		NetWorth:     decimal.Zero,
	}
	if summary.BankAccounts == nil {
		summary.BankAccounts = []BankHolding{}
	}

	for _, key := range b.order {
		position := *b.positions[key]
		if position.Quantity.IsPositive() {
			position.AveragePrice = position.TotalInvested.DivRound(position.Quantity, averagePriceScale)
		}

		// When no live quote is available the purchase price stands in,
		// so unrealized gain reads zero until a quote arrives.
		price := position.AveragePrice
		if quotes != nil && position.Symbol != "" {
			if live, ok := quotes.Price(position.Symbol); ok {
				price = live
				position.LivePrice = true
			}
		}
		position.CurrentPrice = price
		position.ActualWorth = price.Mul(position.Quantity)

		summary.NetWorth = summary.NetWorth.Add(position.ActualWorth)
		summary.Stocks = append(summary.Stocks, position)
	}

	sort.Slice(summary.BankAccounts, func(i, j int) bool {
		return summary.BankAccounts[i].Name < summary.BankAccounts[j].Name
	})
	for _, bank := range summary.BankAccounts {
		summary.NetWorth = summary.NetWorth.Add(bank.Balance)
	}

	return summary
}
