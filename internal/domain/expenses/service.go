package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxCategoryLen = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListExpenses(ctx context.Context, userID string, filter ListFilter) ([]Expense, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	items, total, err := s.repo.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return []Expense{}, total, nil
	}
	return items, total, nil
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	expense := Expense{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		ExpenseDate: input.ExpenseDate,
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*Expense, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	expense, err := s.repo.GetExpenseByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	expense.Amount = input.Amount
	expense.Category = category
	expense.Description = strings.TrimSpace(input.Description)
	expense.ExpenseDate = input.ExpenseDate
	expense.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	deleted, err := s.repo.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", ErrInvalidCategory
	}
	if len([]rune(category)) > maxCategoryLen {
		return "", ErrInvalidCategory
	}
	return strings.ToLower(category), nil
}
