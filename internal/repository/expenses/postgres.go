package expenses

import (
	"context"
	"errors"

	"gorm.io/gorm"

	expensesdomain "finance-app-go/internal/domain/expenses"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, userID string, filter expensesdomain.ListFilter) ([]expensesdomain.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("expense_date <= ?", *filter.To)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("expense_date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []expensesdomain.Expense
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, userID, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"amount":       expense.Amount,
			"category":     expense.Category,
			"description":  expense.Description,
			"expense_date": expense.ExpenseDate,
			"updated_at":   expense.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, "user_id = ? AND id = ?", userID, expenseID)
	return result.RowsAffected > 0, result.Error
}
