package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// NotificationHandler manages the notification inbox.
type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// HandleList returns the caller's notifications, newest first.
//
// HTTP: GET /api/notifications
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	notifications, err := h.notifications.ListNotifications(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead marks one of the caller's notifications as read.
// Idempotent: repeating the call on an already-read notification succeeds.
//
// HTTP: PUT /api/notifications/{id}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(r.Context(), user, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
