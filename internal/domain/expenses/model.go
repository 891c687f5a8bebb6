package expenses

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category    string          `gorm:"size:50;not null"`
	Description string          `gorm:"type:text"`
	ExpenseDate time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Limit    int
	Offset   int
}

type CreateExpenseInput struct {
	UserID      string
	Amount      decimal.Decimal
	Category    string
	Description string
	ExpenseDate time.Time
}

type UpdateExpenseInput struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Category    string
	Description string
	ExpenseDate time.Time
}
