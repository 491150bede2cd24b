package service

import (
	"context"
	"errors"
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

// ClassroomService handles class creation, listing, and enrollment.
type ClassroomService struct {
	classes repository.ClassRepository
	users   repository.UserRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewClassroomService creates a ClassroomService.
func NewClassroomService(
	classes repository.ClassRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ClassroomService {
	return &ClassroomService{
		classes: classes,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateClass creates a class owned by the calling teacher with an empty
// roster. Students may not create classes.
func (s *ClassroomService) CreateClass(ctx context.Context, user *model.User, name, description string) (*model.Class, error) {
	if !auth.CanCreateClass(user) {
		return nil, apperror.Forbidden("only teachers can create classes")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "class name is required")
	}

	class := &model.Class{
		ID:          xid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		TeacherID:   user.ID,
		Students:    []string{},
		CreatedAt:   s.now().UTC(),
	}

	if err := s.classes.CreateClass(ctx, class); err != nil {
		return nil, fmt.Errorf("creating class: %w", err)
	}

	s.logger.Info("class created",
		slog.String("classID", class.ID),
		slog.String("teacherID", user.ID),
	)

	return class, nil
}

// ListClasses returns the classes visible to the user: owned classes for a
// teacher, enrolled classes for a student.
func (s *ClassroomService) ListClasses(ctx context.Context, user *model.User) ([]model.Class, error) {
	var (
		classes []model.Class
		err     error
	)
	if user.IsTeacher() {
		classes, err = s.classes.ListClassesByTeacher(ctx, user.ID)
	} else {
		classes, err = s.classes.ListClassesByStudent(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	return classes, nil
}

// GetClass returns one class. Existence is checked before access: an unknown
// id is NotFound, a known class the user may not see is Forbidden.
func (s *ClassroomService) GetClass(ctx context.Context, user *model.User, classID string) (*model.Class, error) {
	class, err := s.classes.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if !auth.CanAccessClass(user, class) {
		return nil, apperror.Forbidden("access denied")
	}

	return class, nil
}

// AddStudent enrolls a student in a class. Only the owning teacher may
// modify the roster, and the target must be an existing student account.
func (s *ClassroomService) AddStudent(ctx context.Context, user *model.User, classID, studentID string) (*model.Class, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("student_id", "student ID required")
	}

	class, err := s.classes.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if !auth.CanManageRoster(user, class) {
		return nil, apperror.Forbidden("only the owning teacher can enroll students")
	}

	student, err := s.users.GetUserByID(ctx, studentID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NotFound("user", studentID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up student: %w", err)
	}
	if !student.IsStudent() {
		return nil, apperror.ValidationFailed("student_id", "user is not a student")
	}

	if err := s.classes.AddStudent(ctx, classID, studentID); err != nil {
		return nil, fmt.Errorf("enrolling student: %w", err)
	}

	s.logger.Info("student enrolled",
		slog.String("classID", classID),
		slog.String("studentID", studentID),
	)

	return s.classes.GetClassByID(ctx, classID)
}
