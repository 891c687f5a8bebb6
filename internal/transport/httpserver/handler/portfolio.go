package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	portfoliodomain "finance-app-go/internal/domain/portfolio"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type stockPositionResponse struct {
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol,omitempty"`
	Currency      string          `json:"currency"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	ActualWorth   decimal.Decimal `json:"actual_worth"`
	LivePrice     bool            `json:"live_price"`
}

type bankHoldingResponse struct {
	Name     string          `json:"name"`
	BankName string          `json:"bank_name"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type marketSummaryResponse struct {
	Market       string                  `json:"market"`
	Stocks       []stockPositionResponse `json:"stocks"`
	BankAccounts []bankHoldingResponse   `json:"bank_accounts"`
	NetWorth     decimal.Decimal         `json:"net_worth"`
}

type portfolioSummaryResponse struct {
	India  marketSummaryResponse `json:"india"`
	Europe marketSummaryResponse `json:"europe"`
}

func (h *Handlers) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	summary, err := h.Portfolio.Summary(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("portfolio.summary: reconcile failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, portfolioSummaryResponse{
		India:  toMarketSummaryResponse(summary.India),
		Europe: toMarketSummaryResponse(summary.Europe),
	})
}

func toMarketSummaryResponse(summary portfoliodomain.MarketSummary) marketSummaryResponse {
	stocks := make([]stockPositionResponse, 0, len(summary.Stocks))
	for _, position := range summary.Stocks {
		stocks = append(stocks, stockPositionResponse{
			Name:          position.Name,
			Symbol:        position.Symbol,
			Currency:      position.Currency,
			Quantity:      position.Quantity,
			TotalInvested: position.TotalInvested,
			AveragePrice:  position.AveragePrice,
			CurrentPrice:  position.CurrentPrice,
			ActualWorth:   position.ActualWorth,
			LivePrice:     position.LivePrice,
		})
	}

	banks := make([]bankHoldingResponse, 0, len(summary.BankAccounts))
	for _, bank := range summary.BankAccounts {
		banks = append(banks, bankHoldingResponse{
			Name:     bank.Name,
			BankName: bank.BankName,
			Currency: bank.Currency,
			Balance:  bank.Balance,
		})
	}

	return marketSummaryResponse{
		Market:       string(summary.Market),
		Stocks:       stocks,
		BankAccounts: banks,
		NetWorth:     summary.NetWorth,
	}
}
