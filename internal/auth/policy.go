package auth

import "github.com/sakif/lessonhub/internal/model"

// Role/ownership policy. Pure predicates over an already-resolved user and
// the target entity — no store access, no side effects. Services translate
// a false result into apperror.Forbidden; the caller must already have
// established that the entity exists (NotFound is decided before policy).

// CanAccessClass reports whether the user may read the class: teachers see
// classes they own, students see classes they are enrolled in.
func CanAccessClass(user *model.User, class *model.Class) bool {
	switch user.Role {
	case model.RoleTeacher:
		return class.TeacherID == user.ID
	case model.RoleStudent:
		return class.HasStudent(user.ID)
	default:
		return false
	}
}

// CanCreateClass reports whether the user may create classes at all.
func CanCreateClass(user *model.User) bool {
	return user.IsTeacher()
}

// CanCreateLesson reports whether the user may add a lesson to the class:
// only the owning teacher qualifies.
func CanCreateLesson(user *model.User, class *model.Class) bool {
	return ownsClass(user, class)
}

// CanManageRoster reports whether the user may enroll students in the
// class: only the owning teacher qualifies.
func CanManageRoster(user *model.User, class *model.Class) bool {
	return ownsClass(user, class)
}

func ownsClass(user *model.User, class *model.Class) bool {
	return user.IsTeacher() && class.TeacherID == user.ID
}
