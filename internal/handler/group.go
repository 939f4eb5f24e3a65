package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/service"
)

type groupService interface {
	CreateGroup(ctx context.Context, req service.CreateGroupRequest) (*domain.Group, error)
	GetGroup(ctx context.Context, callerID, id uuid.UUID) (*domain.Group, error)
}

type GroupHandler struct {
	groups groupService
}

func NewGroupHandler(groups groupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

type createGroupRequest struct {
	Name    string      `json:"name"`
	Members []uuid.UUID `json:"members"`
}

func (r createGroupRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	return errs
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	g, err := h.groups.CreateGroup(r.Context(), service.CreateGroupRequest{
		Name:      req.Name,
		CreatorID: creatorID,
		Members:   req.Members,
	})
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusCreated, toGroupDTO(g))
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	groupID, ok := uuidParam(w, r, "groupID", ErrGroupNotFound)
	if !ok {
		return
	}

	g, err := h.groups.GetGroup(r.Context(), caller, groupID)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toGroupDTO(g))
}
