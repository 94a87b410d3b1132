package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
	"github.com/clarityos/clarity-server/internal/id"
	"github.com/clarityos/clarity-server/internal/store"
	"github.com/clarityos/clarity-server/internal/validation"
)

// MoneyService owns the money-manager ledger and budgets.
type MoneyService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewMoneyService creates a new money service.
func NewMoneyService(s *store.Store, v *validation.Validator, logger *slog.Logger) *MoneyService {
	return &MoneyService{
		store:     s,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateTransactionRequest carries the user-supplied fields of a ledger row.
type CreateTransactionRequest struct {
	Date     time.Time              `json:"date"`
	Type     domain.TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category string                 `json:"category" validate:"required"`
	Amount   decimal.Decimal        `json:"amount"`
	Note     string                 `json:"note,omitempty"`
}

// CreateTransaction appends a row to the ledger. Amounts must be positive;
// the transaction type carries the sign.
func (s *MoneyService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, errors.Validationf("amount must be positive, got %s", req.Amount)
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	txnID, err := id.Generate(id.PrefixTransaction)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate transaction id")
	}

	txn := domain.Transaction{
		ID:        txnID,
		Date:      date,
		Type:      req.Type,
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: now,
	}
	s.store.SaveTransactions(append(s.store.ListTransactions(), txn))

	s.logger.Info("transaction recorded", "id", txn.ID, "type", txn.Type, "category", txn.Category)
	return &txn, nil
}

// DeleteTransaction removes a ledger row by id. Deleting a missing id
// succeeds.
func (s *MoneyService) DeleteTransaction(ctx context.Context, txnID string) error {
	txns := s.store.ListTransactions()
	kept := slices.DeleteFunc(txns, func(t domain.Transaction) bool {
		return t.ID == txnID
	})
	if len(kept) != len(txns) {
		s.store.SaveTransactions(kept)
	}
	return nil
}

// ListTransactions returns the full ledger.
func (s *MoneyService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(), nil
}

// SetBudget upserts the monthly cap for one category.
func (s *MoneyService) SetBudget(ctx context.Context, category string, monthly decimal.Decimal) (*domain.Budget, error) {
	if strings.TrimSpace(category) == "" {
		return nil, errors.Validationf("category is required")
	}
	if monthly.IsNegative() {
		return nil, errors.Validationf("budget must not be negative, got %s", monthly)
	}

	budget := domain.Budget{Category: category, Monthly: monthly}
	budgets := s.store.ListBudgets()
	replaced := false
	for i := range budgets {
		if budgets[i].Category == category {
			budgets[i] = budget
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, budget)
	}
	s.store.SaveBudgets(budgets)
	return &budget, nil
}

// ListBudgets returns all category budgets.
func (s *MoneyService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return s.store.ListBudgets(), nil
}

// CategorySpend is one month-to-date spend row against its budget.
type CategorySpend struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Budget   decimal.Decimal `json:"budget"`
	Over     bool            `json:"over"`
}

// MonthSummary aggregates the ledger for the current calendar month.
type MonthSummary struct {
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
	Categories []CategorySpend `json:"categories"`
}

// MonthSummary totals income and expenses for the current month and reports
// per-category spend against configured budgets. Categories with spend but
// no budget appear with a zero budget.
func (s *MoneyService) MonthSummary(ctx context.Context) (MonthSummary, error) {
	now := s.now()
	summary := MonthSummary{
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Net:        decimal.Zero,
		Categories: []CategorySpend{},
	}

	spent := make(map[string]decimal.Decimal)
	for _, txn := range s.store.ListTransactions() {
		if !domain.SamePeriod(domain.KindMonthly, txn.Date, now) {
			continue
		}
		switch txn.Type {
		case domain.TransactionIncome:
			summary.Income = summary.Income.Add(txn.Amount)
		case domain.TransactionExpense:
			summary.Expenses = summary.Expenses.Add(txn.Amount)
			spent[txn.Category] = spent[txn.Category].Add(txn.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expenses)

	budgets := make(map[string]decimal.Decimal)
	for _, b := range s.store.ListBudgets() {
		budgets[b.Category] = b.Monthly
	}

	for category, amount := range spent {
		budget := budgets[category]
		summary.Categories = append(summary.Categories, CategorySpend{
			Category: category,
			Spent:    amount,
			Budget:   budget,
			Over:     budget.IsPositive() && amount.GreaterThan(budget),
		})
	}
	slices.SortFunc(summary.Categories, func(a, b CategorySpend) int {
		return strings.Compare(a.Category, b.Category)
	})

	return summary, nil
}
