package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	familydomain "finance-app-go/internal/domain/family"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type familyMemberRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
}

type familyMemberResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (h *Handlers) ListFamilyMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	members, err := h.Family.ListMembers(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("family.list: list members failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]familyMemberResponse, 0, len(members))
	for i := range members {
		response = append(response, toFamilyMemberResponse(&members[i]))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": response})
}

func (h *Handlers) CreateFamilyMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req familyMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_of_birth")
		return
	}

	member, err := h.Family.CreateMember(r.Context(), familydomain.CreateMemberInput{
		UserID:       user.ID,
		Name:         req.Name,
		Relationship: req.Relationship,
		DateOfBirth:  dateOfBirth,
	})
	if err != nil {
		if errors.Is(err, familydomain.ErrInvalidRelationship) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid relationship")
			return
		}
		h.log.InternalError("family.create: create member failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toFamilyMemberResponse(member))
}

func (h *Handlers) UpdateFamilyMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req familyMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_of_birth")
		return
	}

	member, err := h.Family.UpdateMember(r.Context(), familydomain.UpdateMemberInput{
		ID:           chi.URLParam(r, "id"),
		UserID:       user.ID,
		Name:         req.Name,
		Relationship: req.Relationship,
		DateOfBirth:  dateOfBirth,
	})
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "family member not found")
		case errors.Is(err, familydomain.ErrInvalidRelationship):
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid relationship")
		default:
			h.log.InternalError("family.update: update member failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toFamilyMemberResponse(member))
}

func (h *Handlers) DeleteFamilyMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Family.DeleteMember(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, familydomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "family member not found")
			return
		}
		h.log.InternalError("family.delete: delete member failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func toFamilyMemberResponse(member *familydomain.Member) familyMemberResponse {
	response := familyMemberResponse{
		ID:           member.ID,
		Name:         member.Name,
		Relationship: member.Relationship,
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	}
	if member.DateOfBirth != nil {
		response.DateOfBirth = member.DateOfBirth.Format("2006-01-02")
	}
	return response
}
