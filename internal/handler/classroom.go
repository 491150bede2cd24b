package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// ClassroomHandler manages class CRUD and enrollment.
type ClassroomHandler struct {
	classrooms *service.ClassroomService
	logger     *slog.Logger
}

// NewClassroomHandler creates a ClassroomHandler.
func NewClassroomHandler(classrooms *service.ClassroomService, logger *slog.Logger) *ClassroomHandler {
	return &ClassroomHandler{classrooms: classrooms, logger: logger}
}

type createClassRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a class owned by the calling teacher.
//
// HTTP: POST /api/classes
// BODY: {"name": "Algebra", "description": "..."}
func (h *ClassroomHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid class JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	class, err := h.classrooms.CreateClass(r.Context(), user, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, class)
}

// HandleList returns the classes visible to the caller.
//
// HTTP: GET /api/classes
func (h *ClassroomHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	classes, err := h.classrooms.ListClasses(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, classes)
}

// HandleGet returns one class by id.
//
// HTTP: GET /api/classes/{id}
func (h *ClassroomHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	class, err := h.classrooms.GetClass(r.Context(), user, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, class)
}

type addStudentRequest struct {
	StudentID string `json:"student_id"`
}

// HandleAddStudent enrolls a student in a class the caller owns.
//
// HTTP: POST /api/classes/{id}/students
// BODY: {"student_id": "..."}
func (h *ClassroomHandler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req addStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid enrollment JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	class, err := h.classrooms.AddStudent(r.Context(), user, r.PathValue("id"), req.StudentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, class)
}
