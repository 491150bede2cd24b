package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// LessonHandler manages lesson creation and listing.
type LessonHandler struct {
	lessons *service.LessonService
	logger  *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(lessons *service.LessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{lessons: lessons, logger: logger}
}

type createLessonRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ClassID        string `json:"class_id"`
	SlidesURL      string `json:"slides_url"`
	GoogleSlidesID string `json:"google_slides_id"`
	GoogleDocsID   string `json:"google_docs_id"`
	AudioURL       string `json:"audio_url"`
	VideoURL       string `json:"video_url"`
}

// HandleCreate adds a lesson to a class the caller owns and notifies every
// enrolled student.
//
// HTTP: POST /api/lessons
// BODY: {"title": "Intro", "class_id": "...", ...}
func (h *LessonHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid lesson JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	lesson, err := h.lessons.CreateLesson(r.Context(), user, service.LessonInput{
		Title:          req.Title,
		Description:    req.Description,
		ClassID:        req.ClassID,
		SlidesURL:      req.SlidesURL,
		GoogleSlidesID: req.GoogleSlidesID,
		GoogleDocsID:   req.GoogleDocsID,
		AudioURL:       req.AudioURL,
		VideoURL:       req.VideoURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}

// HandleList returns lessons visible to the caller, optionally filtered to
// one class.
//
// HTTP: GET /api/lessons?class_id=...
func (h *LessonHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	lessons, err := h.lessons.ListLessons(r.Context(), user, r.URL.Query().Get("class_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lessons)
}
