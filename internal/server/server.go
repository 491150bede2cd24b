// Package server wires handlers, middleware, and routes together. It is the
// composition root: main.go hands it a config and a logger, and New builds
// the whole dependency graph — store, guard, services, handlers — in one
// place. Nothing else in the codebase constructs cross-package dependencies.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/lessonhub/internal/auth"
	"github.com/sakif/lessonhub/internal/config"
	"github.com/sakif/lessonhub/internal/google"
	"github.com/sakif/lessonhub/internal/handler"
	"github.com/sakif/lessonhub/internal/middleware"
	mongorepo "github.com/sakif/lessonhub/internal/repository/mongo"
	"github.com/sakif/lessonhub/internal/service"
)

// Server owns the router, the store connection, and the configured
// shutdown behavior.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *mongorepo.DB // closed on shutdown
}

// New builds the full dependency chain: Mongo store → guard + services →
// handlers → routes. Each layer receives only the interfaces it needs.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := mongorepo.New(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	// Global middleware, in order: request id, real client ip, panic
	// recovery, then our slog request logger.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Collaborators and services. The single *mongorepo.DB satisfies
	// every repository interface.
	identity := auth.NewIdentityClient(s.cfg.IdentityURL)
	guard := auth.NewGuard(s.db, s.db)
	provider := google.NewClient(s.cfg.GoogleClientID, s.cfg.GoogleClientSecret, s.cfg.GoogleRedirectURL)

	authService := service.NewAuthService(identity, s.db, s.db, s.logger)
	classroomService := service.NewClassroomService(s.db, s.db, s.logger)
	lessonService := service.NewLessonService(s.db, s.db, s.db, s.logger)
	messageService := service.NewMessageService(s.db, s.db, s.logger)
	notificationService := service.NewNotificationService(s.db, s.logger)
	googleService := service.NewGoogleService(provider, s.db, s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	classroomHandler := handler.NewClassroomHandler(classroomService, s.logger)
	lessonHandler := handler.NewLessonHandler(lessonService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, s.logger)
	googleHandler := handler.NewGoogleHandler(googleService, s.logger)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"LessonHub API is running"}`))
	})

	// Profile creation is the only public API route — it is what turns an
	// external session id into a usable session.
	s.router.Post("/api/auth/profile", authHandler.HandleCreateProfile)

	// Everything else requires a live session; the guard re-resolves it
	// from the store on every request.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(guard))

		r.Get("/api/auth/me", authHandler.HandleMe)

		r.Post("/api/classes", classroomHandler.HandleCreate)
		r.Get("/api/classes", classroomHandler.HandleList)
		r.Get("/api/classes/{id}", classroomHandler.HandleGet)
		r.Post("/api/classes/{id}/students", classroomHandler.HandleAddStudent)

		r.Post("/api/lessons", lessonHandler.HandleCreate)
		r.Get("/api/lessons", lessonHandler.HandleList)

		r.Post("/api/messages", messageHandler.HandleSend)
		r.Get("/api/messages", messageHandler.HandleList)

		r.Get("/api/notifications", notificationHandler.HandleList)
		r.Put("/api/notifications/{id}/read", notificationHandler.HandleMarkRead)

		r.Get("/api/google/auth-url", googleHandler.HandleAuthURL)
		r.Post("/api/google/callback", googleHandler.HandleCallback)
		r.Get("/api/google/slides", googleHandler.HandleListSlides)
		r.Get("/api/google/docs", googleHandler.HandleListDocs)
		r.Post("/api/google/import-slides", googleHandler.HandleImportSlides)
		r.Post("/api/google/import-docs", googleHandler.HandleImportDocs)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests up to
// the configured timeout, close the store.
func (s *Server) Start() error {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.cfg.HTTPAddr),
			slog.String("database", s.cfg.MongoDatabase),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
