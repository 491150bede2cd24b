package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// MessageService handles direct messages between users.
type MessageService struct {
	messages      repository.MessageRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
	now           func() time.Time
}

// NewMessageService creates a MessageService.
func NewMessageService(
	messages repository.MessageRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:      messages,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// SendMessage records a message from the user to the recipient and fans out
// one `message` notification to the recipient.
//
// An optional class id is recorded as supplied: neither participant is
// verified against that class's roster. A failed notification insert is
// logged and swallowed — the message itself is already committed.
func (s *MessageService) SendMessage(ctx context.Context, user *model.User, recipientID, classID, text string) (*model.Message, error) {
	if recipientID == "" {
		return nil, apperror.ValidationFailed("recipient_id", "recipient ID required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("message", "message text is required")
	}

	msg := &model.Message{
		ID:          xid.New().String(),
		SenderID:    user.ID,
		RecipientID: recipientID,
		ClassID:     classID,
		Message:     text,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	n := &model.Notification{
		ID:        xid.New().String(),
		UserID:    recipientID,
		Title:     "New Message",
		Message:   fmt.Sprintf("You have a new message from %s", user.Name),
		Type:      model.NotificationMessage,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Error("message notification failed",
			slog.String("messageID", msg.ID),
			slog.String("recipientID", recipientID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("message sent",
		slog.String("messageID", msg.ID),
		slog.String("senderID", user.ID),
		slog.String("recipientID", recipientID),
	)

	return msg, nil
}

// ListMessages returns the user's messages, newest first. With a peer
// filter, only the two-way conversation with that peer is returned.
func (s *MessageService) ListMessages(ctx context.Context, user *model.User, peerID string) ([]model.Message, error) {
	var (
		messages []model.Message
		err      error
	)
	if peerID != "" {
		messages, err = s.messages.ListConversation(ctx, user.ID, peerID)
	} else {
		messages, err = s.messages.ListMessagesForUser(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}
