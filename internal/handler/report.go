package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

type reportService interface {
	OweDetails(ctx context.Context, userID uuid.UUID) (*domain.OweDetails, error)
}

type ReportHandler struct {
	reports reportService
}

func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type owedByUserDTO struct {
	CreatedBy userRefDTO      `json:"created_by"`
	TotalOwed decimal.Decimal `json:"total_owed"`
}

type owedToUserDTO struct {
	OwedBy      userRefDTO      `json:"owed_by"`
	TotalOwedTo decimal.Decimal `json:"total_owed_to"`
}

type oweDetailsResponse struct {
	OwedByUser []owedByUserDTO `json:"owed_by_user"`
	OwedToUser []owedToUserDTO `json:"owed_to_user"`
}

// OweDetails serves the report for the user in the path; "me" resolves to
// the caller.
func (h *ReportHandler) OweDetails(w http.ResponseWriter, r *http.Request) {
	var userID uuid.UUID
	if chi.URLParam(r, "userID") == "me" {
		id, ok := callerID(w, r)
		if !ok {
			return
		}
		userID = id
	} else {
		id, ok := uuidParam(w, r, "userID", ErrUserNotFound)
		if !ok {
			return
		}
		userID = id
	}

	details, err := h.reports.OweDetails(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	resp := oweDetailsResponse{
		OwedByUser: make([]owedByUserDTO, len(details.OwedByUser)),
		OwedToUser: make([]owedToUserDTO, len(details.OwedToUser)),
	}
	for i, row := range details.OwedByUser {
		resp.OwedByUser[i] = owedByUserDTO{CreatedBy: toUserRefDTO(row.CreatedBy), TotalOwed: row.TotalOwed}
	}
	for i, row := range details.OwedToUser {
		resp.OwedToUser[i] = owedToUserDTO{OwedBy: toUserRefDTO(row.OwedBy), TotalOwedTo: row.TotalOwedTo}
	}
	RespondSuccess(w, http.StatusOK, resp)
}
