package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/clarityos/clarity-server/internal/http/response"
	"github.com/clarityos/clarity-server/internal/service"
)

// handleListTransactions returns the full ledger.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.money.ListTransactions(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, txns, s.logger)
}

// handleCreateTransaction appends a ledger row.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTransactionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	txn, err := s.money.CreateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, txn, s.logger)
}

// handleDeleteTransaction removes a ledger row; missing ids succeed.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.money.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleListBudgets returns all category budgets.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.money.ListBudgets(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, budgets, s.logger)
}

// handleSetBudget upserts the monthly cap for the {category} route param.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Monthly decimal.Decimal `json:"monthly"`
	}
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	budget, err := s.money.SetBudget(r.Context(), chi.URLParam(r, "category"), req.Monthly)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, budget, s.logger)
}

// handleMonthSummary aggregates the current month's ledger.
func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.money.MonthSummary(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summary, s.logger)
}
