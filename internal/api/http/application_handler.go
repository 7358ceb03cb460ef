package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/service"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type applicationForm struct {
	Category   domain.ApplicationCategory `json:"category"`
	Phone      string                     `json:"phone"`
	Motivation string                     `json:"motivation"`
	Details    json.RawMessage            `json:"details"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var form applicationForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.Submit(r.Context(), actor, form.Category, form.Phone, form.Motivation, form.Details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	apps, err := h.svc.ListOwn(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var form applicationForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.Edit(r.Context(), actor, id, form.Phone, form.Motivation, form.Details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "application deleted")
}

func (h *ApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	apps, err := h.svc.ListAll(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) Review(w http.ResponseWriter, r *http.Request) {
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
		Status domain.ApplicationStatus `json:"status"`
		Notes  string                   `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.svc.Review(r.Context(), reviewer, id, body.Status, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, raw)
	}
	return int32(id), nil
}
