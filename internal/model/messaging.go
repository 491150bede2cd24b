package model

import "time"

// Message is a directed text message between two users, optionally scoped to
// a class. The class scope is recorded as supplied — neither participant is
// required to belong to that class.
type Message struct {
	ID          string    `bson:"id" json:"id"`
	SenderID    string    `bson:"sender_id" json:"sender_id"`
	RecipientID string    `bson:"recipient_id" json:"recipient_id"`
	ClassID     string    `bson:"class_id,omitempty" json:"class_id,omitempty"`
	Message     string    `bson:"message" json:"message"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// NotificationType tags what caused a notification.
type NotificationType string

const (
	NotificationLesson  NotificationType = "lesson"
	NotificationMessage NotificationType = "message"
)

// Notification is addressed to exactly one user. Read starts false and flips
// to true at most once; it never reverts.
type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"user_id" json:"user_id"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	Read      bool             `bson:"read" json:"read"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
