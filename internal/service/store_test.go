package service

// In-memory fake store shared by the service tests. It implements every
// repository interface the services consume, the same way the single Mongo
// store value does in production. Listings return newest-first to match the
// store contract.

import (
	"context"
	"errors"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

type memStore struct {
	users         map[string]*model.User
	sessions      []*model.Session
	classes       map[string]*model.Class
	lessons       []*model.Lesson
	imports       []*model.SlideImport
	messages      []*model.Message
	notifications []*model.Notification
	creds         map[string]*model.GoogleCredential

	failNotifications bool // simulate notification insert failures
}

var (
	_ repository.UserRepository         = (*memStore)(nil)
	_ repository.SessionRepository      = (*memStore)(nil)
	_ repository.ClassRepository        = (*memStore)(nil)
	_ repository.LessonRepository       = (*memStore)(nil)
	_ repository.SlideImportRepository  = (*memStore)(nil)
	_ repository.MessageRepository      = (*memStore)(nil)
	_ repository.NotificationRepository = (*memStore)(nil)
	_ repository.CredentialRepository   = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*model.User),
		classes: make(map[string]*model.Class),
		creds:   make(map[string]*model.GoogleCredential),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *memStore) CreateSession(_ context.Context, session *model.Session) error {
	stored := *session
	m.sessions = append(m.sessions, &stored)
	return nil
}

func (m *memStore) GetSessionByToken(_ context.Context, sessionID string) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			result := *s
			return &result, nil
		}
	}
	return nil, apperror.NotFound("session", sessionID)
}

func (m *memStore) CreateClass(_ context.Context, class *model.Class) error {
	stored := *class
	m.classes[class.ID] = &stored
	return nil
}

func (m *memStore) GetClassByID(_ context.Context, id string) (*model.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return nil, apperror.NotFound("class", id)
	}
	result := *class
	return &result, nil
}

func (m *memStore) ListClassesByTeacher(_ context.Context, teacherID string) ([]model.Class, error) {
	result := []model.Class{}
	for _, c := range m.classes {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memStore) ListClassesByStudent(_ context.Context, studentID string) ([]model.Class, error) {
	result := []model.Class{}
	for _, c := range m.classes {
		if c.HasStudent(studentID) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memStore) AddStudent(_ context.Context, classID, studentID string) error {
	class, ok := m.classes[classID]
	if !ok {
		return apperror.NotFound("class", classID)
	}
	if !class.HasStudent(studentID) {
		class.Students = append(class.Students, studentID)
	}
	return nil
}

func (m *memStore) CreateLesson(_ context.Context, lesson *model.Lesson) error {
	stored := *lesson
	m.lessons = append(m.lessons, &stored)
	return nil
}

func (m *memStore) ListLessonsByClass(_ context.Context, classID string) ([]model.Lesson, error) {
	result := []model.Lesson{}
	for i := len(m.lessons) - 1; i >= 0; i-- {
		if m.lessons[i].ClassID == classID {
			result = append(result, *m.lessons[i])
		}
	}
	return result, nil
}

func (m *memStore) ListLessonsByClasses(_ context.Context, classIDs []string) ([]model.Lesson, error) {
	ids := make(map[string]bool, len(classIDs))
	for _, id := range classIDs {
		ids[id] = true
	}
	result := []model.Lesson{}
	for i := len(m.lessons) - 1; i >= 0; i-- {
		if ids[m.lessons[i].ClassID] {
			result = append(result, *m.lessons[i])
		}
	}
	return result, nil
}

func (m *memStore) ListLessonsByTeacher(_ context.Context, teacherID string) ([]model.Lesson, error) {
	result := []model.Lesson{}
	for i := len(m.lessons) - 1; i >= 0; i-- {
		if m.lessons[i].TeacherID == teacherID {
			result = append(result, *m.lessons[i])
		}
	}
	return result, nil
}

func (m *memStore) SetLessonSlidesRef(_ context.Context, lessonID, teacherID, slidesID string) (bool, error) {
	for _, l := range m.lessons {
		if l.ID == lessonID && l.TeacherID == teacherID {
			l.GoogleSlidesID = slidesID
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SetLessonDocsRef(_ context.Context, lessonID, teacherID, docsID string) (bool, error) {
	for _, l := range m.lessons {
		if l.ID == lessonID && l.TeacherID == teacherID {
			l.GoogleDocsID = docsID
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateSlideImport(_ context.Context, imp *model.SlideImport) error {
	stored := *imp
	m.imports = append(m.imports, &stored)
	return nil
}

func (m *memStore) ListSlideImportsByUser(_ context.Context, userID string) ([]model.SlideImport, error) {
	result := []model.SlideImport{}
	for i := len(m.imports) - 1; i >= 0; i-- {
		if m.imports[i].UserID == userID {
			result = append(result, *m.imports[i])
		}
	}
	return result, nil
}

func (m *memStore) CreateMessage(_ context.Context, msg *model.Message) error {
	stored := *msg
	m.messages = append(m.messages, &stored)
	return nil
}

func (m *memStore) ListMessagesForUser(_ context.Context, userID string) ([]model.Message, error) {
	result := []model.Message{}
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		if msg.SenderID == userID || msg.RecipientID == userID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (m *memStore) ListConversation(_ context.Context, userID, peerID string) ([]model.Message, error) {
	result := []model.Message{}
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		if (msg.SenderID == userID && msg.RecipientID == peerID) ||
			(msg.SenderID == peerID && msg.RecipientID == userID) {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (m *memStore) CreateNotification(_ context.Context, n *model.Notification) error {
	if m.failNotifications {
		return errors.New("store unavailable")
	}
	stored := *n
	m.notifications = append(m.notifications, &stored)
	return nil
}

func (m *memStore) ListNotificationsByUser(_ context.Context, userID string) ([]model.Notification, error) {
	result := []model.Notification{}
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
		}
	}
	return result, nil
}

func (m *memStore) MarkNotificationRead(_ context.Context, id, userID string) (bool, error) {
	for _, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetCredential(_ context.Context, userID string) (*model.GoogleCredential, error) {
	cred, ok := m.creds[userID]
	if !ok {
		return nil, apperror.NotFound("google credential", userID)
	}
	result := *cred
	return &result, nil
}

func (m *memStore) UpsertCredential(_ context.Context, cred *model.GoogleCredential) error {
	stored := *cred
	m.creds[cred.UserID] = &stored
	return nil
}

// Test fixtures shared across the service tests.

func teacherUser(id string) *model.User {
	return &model.User{ID: id, Email: id + "@school.test", Name: "Teacher " + id, Role: model.RoleTeacher}
}

func studentUser(id string) *model.User {
	return &model.User{ID: id, Email: id + "@school.test", Name: "Student " + id, Role: model.RoleStudent}
}
