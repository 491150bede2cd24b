package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

var (
	_ repository.MessageRepository      = (*DB)(nil)
	_ repository.NotificationRepository = (*DB)(nil)
)

func (db *DB) CreateMessage(ctx context.Context, msg *model.Message) error {
	if _, err := db.db.Collection(collMessages).InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("mongo: inserting message %s: %w", msg.ID, err)
	}
	return nil
}

func (db *DB) ListMessagesForUser(ctx context.Context, userID string) ([]model.Message, error) {
	return db.findMessages(ctx, bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"recipient_id": userID},
	}})
}

func (db *DB) ListConversation(ctx context.Context, userID, peerID string) ([]model.Message, error) {
	return db.findMessages(ctx, bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "recipient_id": peerID},
		bson.M{"sender_id": peerID, "recipient_id": userID},
	}})
}

func (db *DB) findMessages(ctx context.Context, filter bson.M) ([]model.Message, error) {
	cursor, err := db.db.Collection(collMessages).Find(ctx, filter, byNewest())
	if err != nil {
		return nil, fmt.Errorf("mongo: listing messages: %w", err)
	}
	messages := []model.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("mongo: decoding messages: %w", err)
	}
	return messages, nil
}

func (db *DB) CreateNotification(ctx context.Context, n *model.Notification) error {
	if _, err := db.db.Collection(collNotifications).InsertOne(ctx, n); err != nil {
		return fmt.Errorf("mongo: inserting notification %s: %w", n.ID, err)
	}
	return nil
}

func (db *DB) ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	cursor, err := db.db.Collection(collNotifications).Find(ctx, bson.M{"user_id": userID}, byNewest())
	if err != nil {
		return nil, fmt.Errorf("mongo: listing notifications: %w", err)
	}
	notifications := []model.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("mongo: decoding notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead scopes the update to the owning user: a notification
// belonging to someone else does not match, and the caller reports that as
// not found. Setting read=true on an already-read notification matches
// again, which is what makes the operation idempotent.
func (db *DB) MarkNotificationRead(ctx context.Context, id, userID string) (bool, error) {
	res, err := db.db.Collection(collNotifications).UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return false, fmt.Errorf("mongo: marking notification %s read: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
