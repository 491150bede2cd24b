// Package repository declares the persistence interfaces consumed by the
// service layer. The concrete MongoDB implementation lives in the mongo
// subpackage; tests substitute in-memory fakes.
//
// Method names carry the entity (CreateUser, not Create) because a single
// store value implements every interface here.
package repository

import (
	"context"

	"github.com/sakif/lessonhub/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type SessionRepository interface {
	// CreateSession always inserts a new session row — repeated profile
	// creation for the same user accumulates sessions rather than
	// replacing them.
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByToken(ctx context.Context, sessionID string) (*model.Session, error)
}

type ClassRepository interface {
	CreateClass(ctx context.Context, class *model.Class) error
	GetClassByID(ctx context.Context, id string) (*model.Class, error)
	ListClassesByTeacher(ctx context.Context, teacherID string) ([]model.Class, error)
	ListClassesByStudent(ctx context.Context, studentID string) ([]model.Class, error)
	AddStudent(ctx context.Context, classID, studentID string) error
}

type LessonRepository interface {
	CreateLesson(ctx context.Context, lesson *model.Lesson) error
	ListLessonsByClass(ctx context.Context, classID string) ([]model.Lesson, error)
	ListLessonsByClasses(ctx context.Context, classIDs []string) ([]model.Lesson, error)
	ListLessonsByTeacher(ctx context.Context, teacherID string) ([]model.Lesson, error)
	// SetLessonSlidesRef and SetLessonDocsRef update a lesson's external
	// content reference, filtering on both lesson id and owning teacher
	// id. They report whether any lesson matched; a non-owned lesson is a
	// silent no-op for the caller, not an error.
	SetLessonSlidesRef(ctx context.Context, lessonID, teacherID, slidesID string) (bool, error)
	SetLessonDocsRef(ctx context.Context, lessonID, teacherID, docsID string) (bool, error)
}

type SlideImportRepository interface {
	CreateSlideImport(ctx context.Context, imp *model.SlideImport) error
	ListSlideImportsByUser(ctx context.Context, userID string) ([]model.SlideImport, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	// ListMessagesForUser returns every message the user sent or
	// received, newest first.
	ListMessagesForUser(ctx context.Context, userID string) ([]model.Message, error)
	// ListConversation returns the two-way exchange between two users,
	// newest first.
	ListConversation(ctx context.Context, userID, peerID string) ([]model.Message, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	// MarkNotificationRead flips the read flag on the notification with
	// the given id, but only if it belongs to userID. Reports whether a
	// notification matched. Already-read notifications still match
	// (idempotent).
	MarkNotificationRead(ctx context.Context, id, userID string) (bool, error)
}

type CredentialRepository interface {
	GetCredential(ctx context.Context, userID string) (*model.GoogleCredential, error)
	// UpsertCredential replaces the user's credential record, inserting
	// if absent. Keyed on user_id so at most one record exists per user.
	UpsertCredential(ctx context.Context, cred *model.GoogleCredential) error
}
