// Package service contains the business logic layer: it sits between the
// HTTP handlers and the repositories, enforces the role/ownership policy,
// and returns apperror values the handlers translate to status codes.
// Services know nothing about HTTP and receive every dependency through
// their constructor.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/auth"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// SessionTTL is how long a newly issued session authenticates requests.
const SessionTTL = 7 * 24 * time.Hour

// IdentityProvider asserts an external session id into a verified profile.
// Satisfied by *auth.IdentityClient; tests substitute a fake.
type IdentityProvider interface {
	SessionData(ctx context.Context, sessionID string) (*auth.SessionData, error)
}

// AuthService handles profile creation: the exchange of an external session
// id for a local user plus a stored session.
type AuthService struct {
	identity IdentityProvider
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	identity IdentityProvider,
	users repository.UserRepository,
	sessions repository.SessionRepository,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		identity: identity,
		users:    users,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// ProfileResult is returned by CreateProfile: the resolved local user id and
// the bearer token issued by the identity provider.
type ProfileResult struct {
	UserID       string
	SessionToken string
}

// CreateProfile resolves an external session id into a local account.
//
// The assertion service is called once; a failed call is Unauthorized, not a
// provider error, because from the caller's perspective the session id
// simply did not authenticate. Users are looked up or created by email —
// a first login creates the account with the teacher role, and repeated
// logins never change the existing id or role. Every successful call inserts
// a brand-new session row expiring in seven days, so one user may hold any
// number of live sessions.
func (s *AuthService) CreateProfile(ctx context.Context, externalSessionID string) (*ProfileResult, error) {
	if externalSessionID == "" {
		return nil, apperror.ValidationFailed("session_id", "session ID required")
	}

	data, err := s.identity.SessionData(ctx, externalSessionID)
	if err != nil {
		s.logger.Warn("identity assertion failed", slog.String("error", err.Error()))
		return nil, apperror.Unauthorized("invalid session")
	}

	user, err := s.users.GetUserByEmail(ctx, data.Email)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		user = &model.User{
			ID:        xid.New().String(),
			Email:     data.Email,
			Name:      data.Name,
			Picture:   data.Picture,
			Role:      model.RoleTeacher,
			CreatedAt: s.now().UTC(),
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		s.logger.Info("user created",
			slog.String("userID", user.ID),
			slog.String("role", string(user.Role)),
		)
	case err != nil:
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	session := &model.Session{
		SessionID:    externalSessionID,
		UserID:       user.ID,
		SessionToken: data.SessionToken,
		ExpiresAt:    s.now().UTC().Add(SessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session created", slog.String("userID", user.ID))

	return &ProfileResult{
		UserID:       user.ID,
		SessionToken: data.SessionToken,
	}, nil
}
