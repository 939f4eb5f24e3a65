package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/service"
)

type settlementService interface {
	SettleUp(ctx context.Context, req service.SettleUpRequest) (*domain.SettlementResult, error)
}

type SettlementHandler struct {
	settlements settlementService
}

func NewSettlementHandler(settlements settlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

type settleUpRequest struct {
	GroupID  uuid.UUID       `json:"group_id"`
	WithUser uuid.UUID       `json:"with_user"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r settleUpRequest) Validate() []FieldError {
	var errs []FieldError
	if r.GroupID == uuid.Nil {
		errs = append(errs, FieldError{Field: "group_id", Message: "required"})
	}
	if r.WithUser == uuid.Nil {
		errs = append(errs, FieldError{Field: "with_user", Message: "required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	return errs
}

type settleUpResponse struct {
	Message   string                   `json:"message"`
	Outcome   domain.SettlementOutcome `json:"outcome"`
	Remaining decimal.Decimal          `json:"remaining"`
}

func (h *SettlementHandler) SettleUp(w http.ResponseWriter, r *http.Request) {
	payerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req settleUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.settlements.SettleUp(r.Context(), service.SettleUpRequest{
		GroupID:        req.GroupID,
		PayerID:        payerID,
		CounterpartyID: req.WithUser,
		Amount:         req.Amount,
	})
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	msg := "Settled up successfully"
	if res.Outcome == domain.SettlementNothingToSettle {
		msg = "Nothing to settle"
	}
	RespondSuccess(w, http.StatusOK, settleUpResponse{
		Message:   msg,
		Outcome:   res.Outcome,
		Remaining: res.Remaining,
	})
}
