package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/auth"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/service"
)

// fakeStore backs the full request path in these tests: the guard resolves
// sessions and users from it, and the classroom service reads and writes
// classes in it.
type fakeStore struct {
	users    map[string]*model.User
	sessions map[string]*model.Session
	classes  map[string]*model.Class
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*model.User),
		sessions: make(map[string]*model.Session),
		classes:  make(map[string]*model.Class),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeStore) CreateSession(_ context.Context, session *model.Session) error {
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeStore) GetSessionByToken(_ context.Context, sessionID string) (*model.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperror.NotFound("session", sessionID)
	}
	return session, nil
}

func (f *fakeStore) CreateClass(_ context.Context, class *model.Class) error {
	f.classes[class.ID] = class
	return nil
}

func (f *fakeStore) GetClassByID(_ context.Context, id string) (*model.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperror.NotFound("class", id)
	}
	return class, nil
}

func (f *fakeStore) ListClassesByTeacher(_ context.Context, teacherID string) ([]model.Class, error) {
	result := []model.Class{}
	for _, c := range f.classes {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (f *fakeStore) ListClassesByStudent(_ context.Context, studentID string) ([]model.Class, error) {
	result := []model.Class{}
	for _, c := range f.classes {
		if c.HasStudent(studentID) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (f *fakeStore) AddStudent(_ context.Context, classID, studentID string) error {
	class, ok := f.classes[classID]
	if !ok {
		return apperror.NotFound("class", classID)
	}
	if !class.HasStudent(studentID) {
		class.Students = append(class.Students, studentID)
	}
	return nil
}

// newClassroomAPI wires the classroom routes exactly as the server does:
// chi router, session guard middleware, then the handler.
func newClassroomAPI(store *fakeStore) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	guard := auth.NewGuard(store, store)
	h := NewClassroomHandler(service.NewClassroomService(store, store, logger), logger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(guard))
		r.Post("/api/classes", h.HandleCreate)
		r.Get("/api/classes", h.HandleList)
		r.Get("/api/classes/{id}", h.HandleGet)
		r.Post("/api/classes/{id}/students", h.HandleAddStudent)
	})
	return r
}

func loginAs(store *fakeStore, user *model.User) string {
	store.users[user.ID] = user
	token := "session-" + user.ID
	store.sessions[token] = &model.Session{
		SessionID: token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(auth.SessionHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClassRoutesRequireSession(t *testing.T) {
	router := newClassroomAPI(newFakeStore())

	rec := doJSON(t, router, http.MethodGet, "/api/classes", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndFetchClass(t *testing.T) {
	store := newFakeStore()
	router := newClassroomAPI(store)
	token := loginAs(store, &model.User{ID: "t1", Role: model.RoleTeacher})

	rec := doJSON(t, router, http.MethodPost, "/api/classes", token,
		map[string]string{"name": "Algebra", "description": "intro course"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Algebra", created.Name)
	assert.Equal(t, "t1", created.TeacherID)

	rec = doJSON(t, router, http.MethodGet, "/api/classes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateClassAsStudentIsForbidden(t *testing.T) {
	store := newFakeStore()
	router := newClassroomAPI(store)
	token := loginAs(store, &model.User{ID: "s1", Role: model.RoleStudent})

	rec := doJSON(t, router, http.MethodPost, "/api/classes", token,
		map[string]string{"name": "Algebra"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateClassRejectsMalformedJSON(t *testing.T) {
	store := newFakeStore()
	router := newClassroomAPI(store)
	token := loginAs(store, &model.User{ID: "t1", Role: model.RoleTeacher})

	req := httptest.NewRequest(http.MethodPost, "/api/classes", bytes.NewBufferString("{not json"))
	req.Header.Set(auth.SessionHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollStudentOverHTTP(t *testing.T) {
	store := newFakeStore()
	router := newClassroomAPI(store)
	teacherToken := loginAs(store, &model.User{ID: "t1", Role: model.RoleTeacher})
	studentToken := loginAs(store, &model.User{ID: "s1", Role: model.RoleStudent})

	rec := doJSON(t, router, http.MethodPost, "/api/classes", teacherToken,
		map[string]string{"name": "Algebra"})
	require.Equal(t, http.StatusOK, rec.Code)
	var class model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &class))

	// Before enrollment the student gets 403 on the class.
	rec = doJSON(t, router, http.MethodGet, "/api/classes/"+class.ID, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/classes/"+class.ID+"/students", teacherToken,
		map[string]string{"student_id": "s1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, []string{"s1"}, updated.Students)

	rec = doJSON(t, router, http.MethodGet, "/api/classes/"+class.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/classes", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var visible []model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	assert.Len(t, visible, 1)
}

func TestGetUnknownClassIs404(t *testing.T) {
	store := newFakeStore()
	router := newClassroomAPI(store)
	token := loginAs(store, &model.User{ID: "t1", Role: model.RoleTeacher})

	rec := doJSON(t, router, http.MethodGet, "/api/classes/missing", token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
