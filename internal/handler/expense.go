package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/service"
)

type expenseService interface {
	RecordExpense(ctx context.Context, req service.RecordExpenseRequest) (*domain.Expense, error)
	ListExpenses(ctx context.Context, callerID, groupID uuid.UUID) ([]domain.Expense, error)
	GetExpense(ctx context.Context, callerID, id uuid.UUID) (*domain.Expense, error)
}

type ExpenseHandler struct {
	expenses expenseService
}

func NewExpenseHandler(expenses expenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type splitDetailRequest struct {
	UserID     uuid.UUID        `json:"user_id"`
	Percentage *decimal.Decimal `json:"percentage"`
	Amount     *decimal.Decimal `json:"amount"`
}

type createExpenseRequest struct {
	GroupID      uuid.UUID            `json:"group_id"`
	ExpenseName  string               `json:"expense_name"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	SplitType    string               `json:"split_type"`
	SplitDetails []splitDetailRequest `json:"split_details"`
}

func (r createExpenseRequest) Validate() []FieldError {
	var errs []FieldError
	if r.GroupID == uuid.Nil {
		errs = append(errs, FieldError{Field: "group_id", Message: "required"})
	}
	if r.ExpenseName == "" {
		errs = append(errs, FieldError{Field: "expense_name", Message: "required"})
	}
	if !r.TotalAmount.IsPositive() {
		errs = append(errs, FieldError{Field: "total_amount", Message: "must be greater than zero"})
	}
	if r.SplitType == "" {
		errs = append(errs, FieldError{Field: "split_type", Message: "required"})
	}
	if len(r.SplitDetails) == 0 {
		errs = append(errs, FieldError{Field: "split_details", Message: "at least one participant required"})
	}
	for _, d := range r.SplitDetails {
		if d.UserID == uuid.Nil {
			errs = append(errs, FieldError{Field: "split_details.user_id", Message: "required"})
			break
		}
	}
	return errs
}

type createExpenseResponse struct {
	Message string     `json:"message"`
	Expense expenseDTO `json:"expense"`
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	details := make([]domain.SplitDetail, len(req.SplitDetails))
	for i, d := range req.SplitDetails {
		details[i] = domain.SplitDetail{UserID: d.UserID, Percentage: d.Percentage, Amount: d.Amount}
	}

	expense, err := h.expenses.RecordExpense(r.Context(), service.RecordExpenseRequest{
		GroupID:      req.GroupID,
		Name:         req.ExpenseName,
		TotalAmount:  req.TotalAmount,
		SplitType:    domain.SplitType(req.SplitType),
		SplitDetails: details,
		CreatorID:    creatorID,
	})
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, createExpenseResponse{
		Message: "Expense added successfully",
		Expense: toExpenseDTO(expense),
	})
}

func (h *ExpenseHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	groupID, ok := uuidParam(w, r, "groupID", ErrGroupNotFound)
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(r.Context(), caller, groupID)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	dtos := make([]expenseDTO, len(expenses))
	for i := range expenses {
		dtos[i] = toExpenseDTO(&expenses[i])
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	expenseID, ok := uuidParam(w, r, "expenseID", ErrExpenseNotFound)
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpense(r.Context(), caller, expenseID)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toExpenseDTO(expense))
}
