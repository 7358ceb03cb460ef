package http

import (
	"net/http"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/service"
)

type RoleRequestHandler struct {
	svc service.RoleRequestService
}

func NewRoleRequestHandler(svc service.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{svc: svc}
}

func (h *RoleRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		RequestedRole domain.Role `json:"requested_role"`
		Reason        string      `json:"reason"`
		Evidence      []string    `json:"evidence"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req, err := h.svc.Submit(r.Context(), actor, body.RequestedRole, body.Reason, body.Evidence)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, req)
}

func (h *RoleRequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	reqs, err := h.svc.ListOwn(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, reqs)
}

func (h *RoleRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := domain.RoleRequestStatus(r.URL.Query().Get("status"))
	reqs, err := h.svc.ListAll(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, reqs)
}

func (h *RoleRequestHandler) Review(w http.ResponseWriter, r *http.Request) {
	reviewer, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Status domain.RoleRequestStatus `json:"status"`
		Notes  string                   `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req, err := h.svc.Review(r.Context(), reviewer, id, body.Status, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, req)
}
