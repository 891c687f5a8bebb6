package assets

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindStock           Kind = "stock"
	KindMutualFund      Kind = "mutual_fund"
	KindBankAccount     Kind = "bank_account"
	KindFixedDeposit    Kind = "fixed_deposit"
	KindInsurancePolicy Kind = "insurance_policy"
	KindCommodity       Kind = "commodity"
)

func (k Kind) Valid() bool {
	switch k {
	case KindStock, KindMutualFund, KindBankAccount, KindFixedDeposit, KindInsurancePolicy, KindCommodity:
		return true
	}
	return false
}

// Asset is a tagged variant: Kind names the variant and exactly one of the
// detail pointers is set, always the one matching Kind.
type Asset struct {
	ID           string
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

	CreatedAt time.Time
	UpdatedAt time.Time
}

type StockDetails struct {
	Symbol        string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	TotalInvested decimal.Decimal
}

type MutualFundDetails struct {
	FolioNumber   string
	Units         decimal.Decimal
	NAV           decimal.Decimal
	TotalInvested decimal.Decimal
}

type BankAccountDetails struct {
	BankName    string
	AccountType string
	Balance     decimal.Decimal
}

type FixedDepositDetails struct {
	BankName     string
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
	MaturityDate *time.Time
}

type InsurancePolicyDetails struct {
	Provider      string
	PolicyNumber  string
	PremiumAmount decimal.Decimal
	CoverAmount   decimal.Decimal
	MaturityDate  *time.Time
}

type CommodityDetails struct {
	CommodityType string
	WeightGrams   decimal.Decimal
	PurchasePrice decimal.Decimal
}

type ListFilter struct {
	Kind   Kind
	Limit  int
	Offset int
}
