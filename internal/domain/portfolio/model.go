package portfolio

import "github.com/shopspring/decimal"

type Market string

const (
	MarketIndia  Market = "india"
	MarketEurope Market = "europe"
)

// MarketFor partitions holdings by currency: INR belongs to the India market,
// everything else to Europe.
func MarketFor(currency string) Market {
	if currency == "INR" {
		return MarketIndia
	}
	return MarketEurope
}

// StockPosition is a merged holding: same-name stocks (case-insensitive)
// within one market collapse into a single position.
type StockPosition struct {
	Name          string
	Symbol        string
	Currency      string
	Quantity      decimal.Decimal
	TotalInvested decimal.Decimal
	AveragePrice  decimal.Decimal
	CurrentPrice  decimal.Decimal
	ActualWorth   decimal.Decimal
	LivePrice     bool
}

type BankHolding struct {
	Name     string
	BankName string
	Currency string
	Balance  decimal.Decimal
}

type MarketSummary struct {
	Market       Market
	Stocks       []StockPosition
	BankAccounts []BankHolding
	NetWorth     decimal.Decimal
}

type Summary struct {
	India  MarketSummary
	Europe MarketSummary
}
