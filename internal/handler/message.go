package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// MessageHandler manages direct messages.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	ClassID     string `json:"class_id"`
	Message     string `json:"message"`
}

// HandleSend records a message and notifies the recipient.
//
// HTTP: POST /api/messages
// BODY: {"recipient_id": "...", "message": "...", "class_id": "..."}
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid message JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	msg, err := h.messages.SendMessage(r.Context(), user, req.RecipientID, req.ClassID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// HandleList returns the caller's messages, optionally narrowed to the
// conversation with one peer.
//
// HTTP: GET /api/messages?recipient_id=...
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	messages, err := h.messages.ListMessages(r.Context(), user, r.URL.Query().Get("recipient_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
