package assets

import (
	"context"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateAssetInput struct {
	UserID       string
	Kind         Kind
	Name         string
	Currency     string
	CurrentValue decimal.Decimal

	Stock           *StockDetails
	MutualFund      *MutualFundDetails
	BankAccount     *BankAccountDetails
	FixedDeposit    *FixedDepositDetails
	InsurancePolicy *InsurancePolicyDetails
	Commodity       *CommodityDetails
}

type UpdateAssetInput struct {
	ID           string
	UserID       string
	Name         string
	Currency     string
	CurrentValue decimal.Decimal

	Stock           *StockDetails
	MutualFund      *MutualFundDetails
	BankAccount     *BankAccountDetails
	FixedDeposit    *FixedDepositDetails
	InsurancePolicy *InsurancePolicyDetails
	Commodity       *CommodityDetails
}

func (s *Service) ListAssets(ctx context.Context, userID string, filter ListFilter) ([]Asset, int64, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, 0, ErrInvalidKind
	}
	return s.repo.ListAssets(ctx, userID, filter)
}

func (s *Service) GetAsset(ctx context.Context, userID, assetID string) (*Asset, error) {
	return s.repo.GetAssetByID(ctx, userID, assetID)
}

func (s *Service) CreateAsset(ctx context.Context, input CreateAssetInput) (*Asset, error) {
	asset := Asset{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Kind:         input.Kind,
		Name:         strings.TrimSpace(input.Name),
		Currency:     strings.ToUpper(strings.TrimSpace(input.Currency)),
		CurrentValue: input.CurrentValue,

		Stock:           input.Stock,
		MutualFund:      input.MutualFund,
		BankAccount:     input.BankAccount,
		FixedDeposit:    input.FixedDeposit,
		InsurancePolicy: input.InsurancePolicy,
		Commodity:       input.Commodity,
	}

	if err := s.validate(&asset); err != nil {
		return nil, err
	}
	normalize(&asset)

	if err := s.repo.CreateAsset(ctx, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset replaces the asset's mutable fields. The kind is fixed at
// creation: the submitted details must still match the stored kind.
func (s *Service) UpdateAsset(ctx context.Context, input UpdateAssetInput) (*Asset, error) {
	existing, err := s.repo.GetAssetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	asset := Asset{
		ID:           existing.ID,
		UserID:       existing.UserID,
		Kind:         existing.Kind,
		Name:         strings.TrimSpace(input.Name),
		Currency:     strings.ToUpper(strings.TrimSpace(input.Currency)),
		CurrentValue: input.CurrentValue,
		CreatedAt:    existing.CreatedAt,

		Stock:           input.Stock,
		MutualFund:      input.MutualFund,
		BankAccount:     input.BankAccount,
		FixedDeposit:    input.FixedDeposit,
		InsurancePolicy: input.InsurancePolicy,
		Commodity:       input.Commodity,
	}

	if err := s.validate(&asset); err != nil {
		return nil, err
	}
	normalize(&asset)

	if err := s.repo.UpdateAsset(ctx, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, userID, assetID string) error {
	deleted, err := s.repo.DeleteAsset(ctx, userID, assetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAssetNotFound
	}
	return nil
}

func (s *Service) validate(asset *Asset) error {
	if !asset.Kind.Valid() {
		return ErrInvalidKind
	}
	if money.GetCurrency(asset.Currency) == nil {
		return ErrInvalidCurrency
	}
	return validateDetails(asset)
}

// validateDetails enforces the variant shape: exactly one detail struct is
// set, and it is the one the kind names.
func validateDetails(asset *Asset) error {
	var set int
	for _, present := range []bool{
		asset.Stock != nil,
		asset.MutualFund != nil,
		asset.BankAccount != nil,
		asset.FixedDeposit != nil,
		asset.InsurancePolicy != nil,
		asset.Commodity != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return ErrDetailMismatch
	}

	var matches bool
	switch asset.Kind {
	case KindStock:
		matches = asset.Stock != nil
	case KindMutualFund:
		matches = asset.MutualFund != nil
	case KindBankAccount:
		matches = asset.BankAccount != nil
	case KindFixedDeposit:
		matches = asset.FixedDeposit != nil
	case KindInsurancePolicy:
		matches = asset.InsurancePolicy != nil
	case KindCommodity:
		matches = asset.Commodity != nil
	}
	if !matches {
		return ErrDetailMismatch
	}
	return nil
}

func normalize(asset *Asset) {
	switch {
	case asset.Stock != nil:
		asset.Stock.Symbol = strings.ToUpper(strings.TrimSpace(asset.Stock.Symbol))
		if asset.Stock.TotalInvested.IsZero() {
			asset.Stock.TotalInvested = asset.Stock.PurchasePrice.Mul(asset.Stock.Quantity)
		}
	case asset.MutualFund != nil:
		asset.MutualFund.FolioNumber = strings.TrimSpace(asset.MutualFund.FolioNumber)
		if asset.MutualFund.TotalInvested.IsZero() {
			asset.MutualFund.TotalInvested = asset.MutualFund.NAV.Mul(asset.MutualFund.Units)
		}
	}

	if asset.CurrentValue.IsZero() {
		asset.CurrentValue = derivedValue(asset)
	}
}

// derivedValue stands in for an unset current value using what the detail
// struct already knows.
func derivedValue(asset *Asset) decimal.Decimal {
	switch {
	case asset.Stock != nil:
		return asset.Stock.TotalInvested
	case asset.MutualFund != nil:
		return asset.MutualFund.NAV.Mul(asset.MutualFund.Units)
	case asset.BankAccount != nil:
		return asset.BankAccount.Balance
	case asset.FixedDeposit != nil:
		return asset.FixedDeposit.Principal
	case asset.InsurancePolicy != nil:
		return asset.InsurancePolicy.CoverAmount
	case asset.Commodity != nil:
		return asset.Commodity.PurchasePrice.Mul(asset.Commodity.WeightGrams)
	}
	return decimal.Zero
}
