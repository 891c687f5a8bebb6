package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	assetsdomain "finance-app-go/internal/domain/assets"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type stockPayload struct {
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	TotalInvested decimal.Decimal `json:"total_invested"`
}

type mutualFundPayload struct {
	FolioNumber   string          `json:"folio_number"`
	Units         decimal.Decimal `json:"units"`
	NAV           decimal.Decimal `json:"nav"`
	TotalInvested decimal.Decimal `json:"total_invested"`
}

type bankAccountPayload struct {
	BankName    string          `json:"bank_name"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

type fixedDepositPayload struct {
	BankName     string          `json:"bank_name"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	MaturityDate string          `json:"maturity_date"`
}

type insurancePolicyPayload struct {
	Provider      string          `json:"provider"`
	PolicyNumber  string          `json:"policy_number"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
	CoverAmount   decimal.Decimal `json:"cover_amount"`
	MaturityDate  string          `json:"maturity_date"`
}

type commodityPayload struct {
	CommodityType string          `json:"commodity_type"`
	WeightGrams   decimal.Decimal `json:"weight_grams"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

type assetRequest struct {
	Kind         string          `json:"kind"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	CurrentValue decimal.Decimal `json:"current_value"`

	Stock           *stockPayload           `json:"stock"`
	MutualFund      *mutualFundPayload      `json:"mutual_fund"`
	BankAccount     *bankAccountPayload     `json:"bank_account"`
	FixedDeposit    *fixedDepositPayload    `json:"fixed_deposit"`
	InsurancePolicy *insurancePolicyPayload `json:"insurance_policy"`
	Commodity       *commodityPayload       `json:"commodity"`
}

type assetResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	CurrentValue decimal.Decimal `json:"current_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Stock           *stockPayload           `json:"stock,omitempty"`
	MutualFund      *mutualFundPayload      `json:"mutual_fund,omitempty"`
	BankAccount     *bankAccountPayload     `json:"bank_account,omitempty"`
	FixedDeposit    *fixedDepositPayload    `json:"fixed_deposit,omitempty"`
	InsurancePolicy *insurancePolicyPayload `json:"insurance_policy,omitempty"`
	Commodity       *commodityPayload       `json:"commodity,omitempty"`
}

type assetListResponse struct {
	Items []assetResponse `json:"items"`
	Total int64           `json:"total"`
}

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	filter := assetsdomain.ListFilter{
		Kind:   assetsdomain.Kind(strings.TrimSpace(query.Get("kind"))),
		Limit:  limit,
		Offset: offset,
	}

	items, total, err := h.Assets.ListAssets(r.Context(), user.ID, filter)
	if err != nil {
		if errors.Is(err, assetsdomain.ErrInvalidKind) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid asset kind")
			return
		}
		h.log.InternalError("assets.list: list assets failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]assetResponse, 0, len(items))
	for i := range items {
		response = append(response, toAssetResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, assetListResponse{Items: response, Total: total})
}

func (h *Handlers) GetAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	asset, err := h.Assets.GetAsset(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, assetsdomain.ErrAssetNotFound) {
			writeError(w, http.StatusNotFound, "asset_not_found", "asset not found")
			return
		}
		h.log.InternalError("assets.get: get asset failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toAssetResponse(asset))
}

func (h *Handlers) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if strings.TrimSpace(req.Currency) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "currency is required")
		return
	}

	details, err := detailsFromRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	asset, err := h.Assets.CreateAsset(r.Context(), assetsdomain.CreateAssetInput{
		UserID:          user.ID,
		Kind:            assetsdomain.Kind(req.Kind),
		Name:            req.Name,
		Currency:        req.Currency,
		CurrentValue:    req.CurrentValue,
		Stock:           details.stock,
		MutualFund:      details.mutualFund,
		BankAccount:     details.bankAccount,
		FixedDeposit:    details.fixedDeposit,
		InsurancePolicy: details.insurancePolicy,
		Commodity:       details.commodity,
	})
	if err != nil {
		h.writeAssetError(w, "assets.create", user.ID, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssetResponse(asset))
}

func (h *Handlers) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	details, err := detailsFromRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	asset, err := h.Assets.UpdateAsset(r.Context(), assetsdomain.UpdateAssetInput{
		ID:              chi.URLParam(r, "id"),
		UserID:          user.ID,
		Name:            req.Name,
		Currency:        req.Currency,
		CurrentValue:    req.CurrentValue,
		Stock:           details.stock,
		MutualFund:      details.mutualFund,
		BankAccount:     details.bankAccount,
		FixedDeposit:    details.fixedDeposit,
		InsurancePolicy: details.insurancePolicy,
		Commodity:       details.commodity,
	})
	if err != nil {
		h.writeAssetError(w, "assets.update", user.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, toAssetResponse(asset))
}

func (h *Handlers) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Assets.DeleteAsset(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, assetsdomain.ErrAssetNotFound) {
			writeError(w, http.StatusNotFound, "asset_not_found", "asset not found")
			return
		}
		h.log.InternalError("assets.delete: delete asset failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) writeAssetError(w http.ResponseWriter, op, userID string, err error) {
	switch {
	case errors.Is(err, assetsdomain.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, "asset_not_found", "asset not found")
	case errors.Is(err, assetsdomain.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid asset kind")
	case errors.Is(err, assetsdomain.ErrInvalidCurrency):
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid currency code")
	case errors.Is(err, assetsdomain.ErrDetailMismatch):
		writeError(w, http.StatusBadRequest, "invalid_request", "asset details do not match kind")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

type assetDetails struct {
	stock           *assetsdomain.StockDetails
	mutualFund      *assetsdomain.MutualFundDetails
	bankAccount     *assetsdomain.BankAccountDetails
	fixedDeposit    *assetsdomain.FixedDepositDetails
	insurancePolicy *assetsdomain.InsurancePolicyDetails
	commodity       *assetsdomain.CommodityDetails
}

func detailsFromRequest(req *assetRequest) (assetDetails, error) {
	var details assetDetails

	if req.Stock != nil {
		details.stock = &assetsdomain.StockDetails{
			Symbol:        req.Stock.Symbol,
			Quantity:      req.Stock.Quantity,
			PurchasePrice: req.Stock.PurchasePrice,
			TotalInvested: req.Stock.TotalInvested,
		}
	}
	if req.MutualFund != nil {
		details.mutualFund = &assetsdomain.MutualFundDetails{
			FolioNumber:   req.MutualFund.FolioNumber,
			Units:         req.MutualFund.Units,
			NAV:           req.MutualFund.NAV,
			TotalInvested: req.MutualFund.TotalInvested,
		}
	}
	if req.BankAccount != nil {
		details.bankAccount = &assetsdomain.BankAccountDetails{
			BankName:    req.BankAccount.BankName,
			AccountType: req.BankAccount.AccountType,
			Balance:     req.BankAccount.Balance,
		}
	}
	if req.FixedDeposit != nil {
		maturity, err := parseOptionalDate(req.FixedDeposit.MaturityDate)
		if err != nil {
			return details, err
		}
		details.fixedDeposit = &assetsdomain.FixedDepositDetails{
			BankName:     req.FixedDeposit.BankName,
			Principal:    req.FixedDeposit.Principal,
			InterestRate: req.FixedDeposit.InterestRate,
			MaturityDate: maturity,
		}
	}
	if req.InsurancePolicy != nil {
		maturity, err := parseOptionalDate(req.InsurancePolicy.MaturityDate)
		if err != nil {
			return details, err
		}
		details.insurancePolicy = &assetsdomain.InsurancePolicyDetails{
			Provider:      req.InsurancePolicy.Provider,
			PolicyNumber:  req.InsurancePolicy.PolicyNumber,
			PremiumAmount: req.InsurancePolicy.PremiumAmount,
			CoverAmount:   req.InsurancePolicy.CoverAmount,
			MaturityDate:  maturity,
		}
	}
	if req.Commodity != nil {
		details.commodity = &assetsdomain.CommodityDetails{
			CommodityType: req.Commodity.CommodityType,
			WeightGrams:   req.Commodity.WeightGrams,
			PurchasePrice: req.Commodity.PurchasePrice,
		}
	}

	return details, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toAssetResponse(asset *assetsdomain.Asset) assetResponse {
	resp := assetResponse{
		ID:           asset.ID,
		Kind:         string(asset.Kind),
		Name:         asset.Name,
		Currency:     asset.Currency,
		CurrentValue: asset.CurrentValue,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}

	switch {
	case asset.Stock != nil:
		resp.Stock = &stockPayload{
			Symbol:        asset.Stock.Symbol,
			Quantity:      asset.Stock.Quantity,
			PurchasePrice: asset.Stock.PurchasePrice,
			TotalInvested: asset.Stock.TotalInvested,
		}
	case asset.MutualFund != nil:
		resp.MutualFund = &mutualFundPayload{
			FolioNumber:   asset.MutualFund.FolioNumber,
			Units:         asset.MutualFund.Units,
			NAV:           asset.MutualFund.NAV,
			TotalInvested: asset.MutualFund.TotalInvested,
		}
	case asset.BankAccount != nil:
		resp.BankAccount = &bankAccountPayload{
			BankName:    asset.BankAccount.BankName,
			AccountType: asset.BankAccount.AccountType,
			Balance:     asset.BankAccount.Balance,
		}
	case asset.FixedDeposit != nil:
		resp.FixedDeposit = &fixedDepositPayload{
			BankName:     asset.FixedDeposit.BankName,
			Principal:    asset.FixedDeposit.Principal,
			InterestRate: asset.FixedDeposit.InterestRate,
			MaturityDate: formatOptionalDate(asset.FixedDeposit.MaturityDate),
		}
	case asset.InsurancePolicy != nil:
		resp.InsurancePolicy = &insurancePolicyPayload{
			Provider:      asset.InsurancePolicy.Provider,
			PolicyNumber:  asset.InsurancePolicy.PolicyNumber,
			PremiumAmount: asset.InsurancePolicy.PremiumAmount,
			CoverAmount:   asset.InsurancePolicy.CoverAmount,
			MaturityDate:  formatOptionalDate(asset.InsurancePolicy.MaturityDate),
		}
	case asset.Commodity != nil:
		resp.Commodity = &commodityPayload{
			CommodityType: asset.Commodity.CommodityType,
			WeightGrams:   asset.Commodity.WeightGrams,
			PurchasePrice: asset.Commodity.PurchasePrice,
		}
	}

	return resp
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}
