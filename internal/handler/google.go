package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/lessonhub/internal/service"
)

// GoogleHandler exposes the document-provider integration: connecting an
// account, browsing Drive, and importing slides/docs into lessons.
type GoogleHandler struct {
	google *service.GoogleService
	logger *slog.Logger
}

// NewGoogleHandler creates a GoogleHandler.
func NewGoogleHandler(google *service.GoogleService, logger *slog.Logger) *GoogleHandler {
	return &GoogleHandler{google: google, logger: logger}
}

// HandleAuthURL returns the provider authorization URL to redirect the
// user to.
//
// HTTP: GET /api/google/auth-url
func (h *GoogleHandler) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"auth_url": h.google.AuthURL()})
}

type googleCallbackRequest struct {
	Code string `json:"code"`
}

// HandleCallback completes the OAuth exchange and stores the credential.
//
// HTTP: POST /api/google/callback
// BODY: {"code": "..."}
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req googleCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid callback JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if err := h.google.Connect(r.Context(), user, req.Code); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"connected": true})
}

// HandleListSlides returns the user's Drive presentations.
//
// HTTP: GET /api/google/slides
func (h *GoogleHandler) HandleListSlides(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	files, err := h.google.ListPresentations(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"presentations": files})
}

// HandleListDocs returns the user's Drive documents.
//
// HTTP: GET /api/google/docs
func (h *GoogleHandler) HandleListDocs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	files, err := h.google.ListDocuments(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": files})
}

type importSlidesRequest struct {
	SlidesID string `json:"slides_id"`
	LessonID string `json:"lesson_id"`
}

// HandleImportSlides imports a presentation, snapshotting its content and
// optionally linking it to one of the caller's lessons.
//
// HTTP: POST /api/google/import-slides
// BODY: {"slides_id": "...", "lesson_id": "..."}
func (h *GoogleHandler) HandleImportSlides(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req importSlidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid import JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	imp, err := h.google.ImportPresentation(r.Context(), user, req.SlidesID, req.LessonID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, imp)
}

type importDocsRequest struct {
	DocsID   string `json:"docs_id"`
	LessonID string `json:"lesson_id"`
}

// HandleImportDocs records a document reference on one of the caller's
// lessons. No document content is persisted.
//
// HTTP: POST /api/google/import-docs
// BODY: {"docs_id": "...", "lesson_id": "..."}
func (h *GoogleHandler) HandleImportDocs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req importDocsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid import JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	doc, err := h.google.ImportDocument(r.Context(), user, req.DocsID, req.LessonID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"title": doc.Title})
}
