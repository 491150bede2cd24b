package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/auth"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// LessonService handles lesson creation with notification fan-out and the
// role-scoped lesson listings.
type LessonService struct {
	lessons       repository.LessonRepository
	classes       repository.ClassRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
	now           func() time.Time
}

// NewLessonService creates a LessonService.
func NewLessonService(
	lessons repository.LessonRepository,
	classes repository.ClassRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *LessonService {
	return &LessonService{
		lessons:       lessons,
		classes:       classes,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// LessonInput carries the optional external content references alongside the
// required title and class.
type LessonInput struct {
	Title          string
	Description    string
	ClassID        string
	SlidesURL      string
	GoogleSlidesID string
	GoogleDocsID   string
	AudioURL       string
	VideoURL       string
}

// CreateLesson adds a lesson to a class and notifies its roster.
//
// Order of checks: teacher role (Forbidden), class existence (NotFound),
// class ownership (Forbidden). The created lesson always carries the class's
// teacher id. After the insert, one `lesson` notification is created per
// enrolled student; the insert and the fan-out are not atomic, and a fan-out
// failure is logged but never reported to the caller.
func (s *LessonService) CreateLesson(ctx context.Context, user *model.User, input LessonInput) (*model.Lesson, error) {
	if !user.IsTeacher() {
		return nil, apperror.Forbidden("only teachers can create lessons")
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, apperror.ValidationFailed("title", "lesson title is required")
	}
	if input.ClassID == "" {
		return nil, apperror.ValidationFailed("class_id", "class ID required")
	}

	class, err := s.classes.GetClassByID(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	if !auth.CanCreateLesson(user, class) {
		return nil, apperror.Forbidden("access denied")
	}

	now := s.now().UTC()
	lesson := &model.Lesson{
		ID:             xid.New().String(),
		Title:          input.Title,
		Description:    strings.TrimSpace(input.Description),
		ClassID:        class.ID,
		TeacherID:      class.TeacherID,
		SlidesURL:      input.SlidesURL,
		GoogleSlidesID: input.GoogleSlidesID,
		GoogleDocsID:   input.GoogleDocsID,
		AudioURL:       input.AudioURL,
		VideoURL:       input.VideoURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.lessons.CreateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("creating lesson: %w", err)
	}

	s.logger.Info("lesson created",
		slog.String("lessonID", lesson.ID),
		slog.String("classID", class.ID),
		slog.Int("students", len(class.Students)),
	)

	s.fanOut(ctx, lesson, class)

	return lesson, nil
}

// fanOut creates one notification per enrolled student. A failed insert
// skips that student only; the lesson itself is already committed.
func (s *LessonService) fanOut(ctx context.Context, lesson *model.Lesson, class *model.Class) {
	for _, studentID := range class.Students {
		n := &model.Notification{
			ID:        xid.New().String(),
			UserID:    studentID,
			Title:     "New Lesson Available",
			Message:   fmt.Sprintf("New lesson '%s' has been added to %s", lesson.Title, class.Name),
			Type:      model.NotificationLesson,
			Read:      false,
			CreatedAt: s.now().UTC(),
		}
		if err := s.notifications.CreateNotification(ctx, n); err != nil {
			s.logger.Error("lesson notification failed",
				slog.String("lessonID", lesson.ID),
				slog.String("studentID", studentID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ListLessons returns lessons visible to the user, newest first.
//
// With a class filter, visibility follows the class access policy (NotFound
// before Forbidden). Without one, a teacher sees their own lessons and a
// student sees lessons of every class they belong to — no enrollments means
// an empty result, not an error.
func (s *LessonService) ListLessons(ctx context.Context, user *model.User, classID string) ([]model.Lesson, error) {
	if classID != "" {
		class, err := s.classes.GetClassByID(ctx, classID)
		if err != nil {
			return nil, err
		}
		if !auth.CanAccessClass(user, class) {
			return nil, apperror.Forbidden("access denied")
		}
		return s.listOrWrap(s.lessons.ListLessonsByClass(ctx, classID))
	}

	if user.IsTeacher() {
		return s.listOrWrap(s.lessons.ListLessonsByTeacher(ctx, user.ID))
	}

	classes, err := s.classes.ListClassesByStudent(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving enrollments: %w", err)
	}
	classIDs := make([]string, 0, len(classes))
	for _, c := range classes {
		classIDs = append(classIDs, c.ID)
	}
	return s.listOrWrap(s.lessons.ListLessonsByClasses(ctx, classIDs))
}

func (s *LessonService) listOrWrap(lessons []model.Lesson, err error) ([]model.Lesson, error) {
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	return lessons, nil
}
