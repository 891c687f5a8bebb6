package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	expensesdomain "finance-app-go/internal/domain/expenses"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type expenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type expenseListResponse struct {
	Items []expenseResponse `json:"items"`
	Total int64             `json:"total"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, total, err := h.Expenses.ListExpenses(r.Context(), user.ID, expensesdomain.ListFilter{
		From:     from,
		To:       to,
		Category: strings.ToLower(strings.TrimSpace(query.Get("category"))),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.InternalError("expenses.list: list expenses failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for i := range items {
		response = append(response, toExpenseResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, expenseListResponse{Items: response, Total: total})
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.ExpenseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense_date")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	expense, err := h.Expenses.CreateExpense(r.Context(), expensesdomain.CreateExpenseInput{
		UserID:      user.ID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: date,
	})
	if err != nil {
		if errors.Is(err, expensesdomain.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
			return
		}
		h.log.InternalError("expenses.create: create expense failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.ExpenseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense_date")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return
	}

	expense, err := h.Expenses.UpdateExpense(r.Context(), expensesdomain.UpdateExpenseInput{
		ID:          chi.URLParam(r, "id"),
		UserID:      user.ID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: date,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrExpenseNotFound):
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		case errors.Is(err, expensesdomain.ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
		default:
			h.log.InternalError("expenses.update: update expense failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.delete: delete expense failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func toExpenseResponse(expense *expensesdomain.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Description: expense.Description,
		ExpenseDate: expense.ExpenseDate.Format("2006-01-02"),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
