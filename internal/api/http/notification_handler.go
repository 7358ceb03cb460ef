package http

import (
	"net/http"
	"strconv"

	"stellarion-backend/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := AccountFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	notes, total, err := h.svc.GetNotifications(r.Context(), actor.ID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.MarkAsRead(r.Context(), actor.ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "notification marked as read")
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
