package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	filter := models.ExpenseFilter{GroupID: r.URL.Query().Get("groupId")}
	expenses, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	writeJSON(w, http.StatusOK, struct {
		Expenses []*models.Expense `json:"expenses"`
	}{Expenses: expenses})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.expenses.Create(r.Context(), &expense)
	if err != nil {
		if errors.Is(err, store.ErrInvalidExpense) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	expense, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
