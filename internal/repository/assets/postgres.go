package assets

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	assetsdomain "finance-app-go/internal/domain/assets"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// assetRow is the single-table persistence shape. The domain variant is
// flattened into kind-specific nullable columns here and nowhere else.
type assetRow struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	UserID       string          `gorm:"type:uuid;index;not null"`
	Kind         string          `gorm:"type:varchar(32);not null"`
	Name         string          `gorm:"not null"`
	Currency     string          `gorm:"size:3;not null"`
	CurrentValue decimal.Decimal `gorm:"type:numeric(20,8);not null"`

	Symbol        *string             `gorm:"type:text"`
	Quantity      decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	PurchasePrice decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	TotalInvested decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	FolioNumber *string             `gorm:"type:text"`
	Units       decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	NAV         decimal.NullDecimal `gorm:"type:numeric(20,8);column:nav"`

	BankName    *string             `gorm:"type:text"`
	AccountType *string             `gorm:"type:text"`
	Balance     decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	Principal    decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	InterestRate decimal.NullDecimal `gorm:"type:numeric(8,4)"`
	MaturityDate *time.Time          `gorm:"type:date"`

	Provider      *string             `gorm:"type:text"`
	PolicyNumber  *string             `gorm:"type:text"`
	PremiumAmount decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	CoverAmount   decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	CommodityType *string             `gorm:"type:text"`
	WeightGrams   decimal.NullDecimal `gorm:"type:numeric(20,8)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (assetRow) TableName() string { return "assets" }

func (r *PostgresRepository) ListAssets(ctx context.Context, userID string, filter assetsdomain.ListFilter) ([]assetsdomain.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&assetRow{}).Where("user_id = ?", userID)
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []assetRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]assetsdomain.Asset, 0, len(rows))
	for i := range rows {
		items = append(items, fromRow(&rows[i]))
	}
	return items, total, nil
}

func (r *PostgresRepository) GetAssetByID(ctx context.Context, userID, assetID string) (*assetsdomain.Asset, error) {
	var row assetRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, assetID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assetsdomain.ErrAssetNotFound
		}
		return nil, err
	}
	asset := fromRow(&row)
	return &asset, nil
}

func (r *PostgresRepository) CreateAsset(ctx context.Context, asset *assetsdomain.Asset) error {
	row := toRow(asset)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	asset.CreatedAt = row.CreatedAt
	asset.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *PostgresRepository) UpdateAsset(ctx context.Context, asset *assetsdomain.Asset) error {
	row := toRow(asset)
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", asset.ID, asset.UserID).
		Select("*").Omit("id", "user_id", "kind", "created_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return assetsdomain.ErrAssetNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAsset(ctx context.Context, userID, assetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&assetRow{}, "user_id = ? AND id = ?", userID, assetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListStockSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&assetRow{}).
		Where("kind = ? AND symbol IS NOT NULL AND symbol <> ''", string(assetsdomain.KindStock)).
		Distinct().
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

func toRow(asset *assetsdomain.Asset) *assetRow {
	row := &assetRow{
		ID:           asset.ID,
		UserID:       asset.UserID,
		Kind:         string(asset.Kind),
		Name:         asset.Name,
		Currency:     asset.Currency,
		CurrentValue: asset.CurrentValue,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}

	switch {
	case asset.Stock != nil:
		row.Symbol = stringPtr(asset.Stock.Symbol)
		row.Quantity = nullDecimal(asset.Stock.Quantity)
		row.PurchasePrice = nullDecimal(asset.Stock.PurchasePrice)
		row.TotalInvested = nullDecimal(asset.Stock.TotalInvested)
	case asset.MutualFund != nil:
		row.FolioNumber = stringPtr(asset.MutualFund.FolioNumber)
		row.Units = nullDecimal(asset.MutualFund.Units)
		row.NAV = nullDecimal(asset.MutualFund.NAV)
		row.TotalInvested = nullDecimal(asset.MutualFund.TotalInvested)
	case asset.BankAccount != nil:
		row.BankName = stringPtr(asset.BankAccount.BankName)
		row.AccountType = stringPtr(asset.BankAccount.AccountType)
		row.Balance = nullDecimal(asset.BankAccount.Balance)
	case asset.FixedDeposit != nil:
		row.BankName = stringPtr(asset.FixedDeposit.BankName)
		row.Principal = nullDecimal(asset.FixedDeposit.Principal)
		row.InterestRate = nullDecimal(asset.FixedDeposit.InterestRate)
		row.MaturityDate = asset.FixedDeposit.MaturityDate
	case asset.InsurancePolicy != nil:
		row.Provider = stringPtr(asset.InsurancePolicy.Provider)
		row.PolicyNumber = stringPtr(asset.InsurancePolicy.PolicyNumber)
		row.PremiumAmount = nullDecimal(asset.InsurancePolicy.PremiumAmount)
		row.CoverAmount = nullDecimal(asset.InsurancePolicy.CoverAmount)
		row.MaturityDate = asset.InsurancePolicy.MaturityDate
	case asset.Commodity != nil:
		row.CommodityType = stringPtr(asset.Commodity.CommodityType)
		row.WeightGrams = nullDecimal(asset.Commodity.WeightGrams)
		row.PurchasePrice = nullDecimal(asset.Commodity.PurchasePrice)
	}

	return row
}

func fromRow(row *assetRow) assetsdomain.Asset {
	asset := assetsdomain.Asset{
		ID:           row.ID,
		UserID:       row.UserID,
		Kind:         assetsdomain.Kind(row.Kind),
		Name:         row.Name,
		Currency:     row.Currency,
		CurrentValue: row.CurrentValue,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	switch asset.Kind {
	case assetsdomain.KindStock:
		asset.Stock = &assetsdomain.StockDetails{
			Symbol:        stringValue(row.Symbol),
			Quantity:      decimalValue(row.Quantity),
			PurchasePrice: decimalValue(row.PurchasePrice),
			TotalInvested: decimalValue(row.TotalInvested),
		}
	case assetsdomain.KindMutualFund:
		asset.MutualFund = &assetsdomain.MutualFundDetails{
			FolioNumber:   stringValue(row.FolioNumber),
			Units:         decimalValue(row.Units),
			NAV:           decimalValue(row.NAV),
			TotalInvested: decimalValue(row.TotalInvested),
		}
	case assetsdomain.KindBankAccount:
		asset.BankAccount = &assetsdomain.BankAccountDetails{
			BankName:    stringValue(row.BankName),
			AccountType: stringValue(row.AccountType),
			Balance:     decimalValue(row.Balance),
		}
	case assetsdomain.KindFixedDeposit:
		asset.FixedDeposit = &assetsdomain.FixedDepositDetails{
			BankName:     stringValue(row.BankName),
			Principal:    decimalValue(row.Principal),
			InterestRate: decimalValue(row.InterestRate),
			MaturityDate: row.MaturityDate,
		}
	case assetsdomain.KindInsurancePolicy:
		asset.InsurancePolicy = &assetsdomain.InsurancePolicyDetails{
			Provider:      stringValue(row.Provider),
			PolicyNumber:  stringValue(row.PolicyNumber),
			PremiumAmount: decimalValue(row.PremiumAmount),
			CoverAmount:   decimalValue(row.CoverAmount),
			MaturityDate:  row.MaturityDate,
		}
	case assetsdomain.KindCommodity:
		asset.Commodity = &assetsdomain.CommodityDetails{
			CommodityType: stringValue(row.CommodityType),
			WeightGrams:   decimalValue(row.WeightGrams),
			PurchasePrice: decimalValue(row.PurchasePrice),
		}
	}

	return asset
}

func stringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nullDecimal(value decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: value, Valid: true}
}

func decimalValue(value decimal.NullDecimal) decimal.Decimal {
	if !value.Valid {
		return decimal.Zero
	}
	return value.Decimal
}
