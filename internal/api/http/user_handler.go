package http

import (
	"encoding/json"
	"net/http"

	"stellarion-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	user, settings, err := h.svc.GetProfile(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user, "settings": settings})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Name    string          `json:"name"`
		Profile json.RawMessage `json:"profile"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), actor.ID, body.Name, body.Profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Deactivate(r.Context(), actor.ID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "account deactivated")
}
