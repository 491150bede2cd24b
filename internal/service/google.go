package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"golang.org/x/oauth2"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/google"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// GoogleProvider is the slice of the Google client the service consumes.
// Satisfied by *google.Client; tests substitute a fake.
type GoogleProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	ClientID() string
	TokenURI() string
	GrantedScopes() []string
	ListFiles(ctx context.Context, accessToken, mimeType string) ([]google.File, error)
	GetPresentation(ctx context.Context, accessToken, id string) (*google.Presentation, error)
	GetDocument(ctx context.Context, accessToken, id string) (*google.Document, error)
}

// GoogleService manages per-user OAuth credentials for the document
// provider and the import operations built on them.
//
// Credential lifecycle per user: disconnected until Connect succeeds, then
// connected until the provider revokes access — revocation is only
// discovered as a failure on next use, never proactively. An expired access
// token is refreshed in place, at most once per request.
type GoogleService struct {
	provider GoogleProvider
	creds    repository.CredentialRepository
	lessons  repository.LessonRepository
	imports  repository.SlideImportRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewGoogleService creates a GoogleService.
func NewGoogleService(
	provider GoogleProvider,
	creds repository.CredentialRepository,
	lessons repository.LessonRepository,
	imports repository.SlideImportRepository,
	logger *slog.Logger,
) *GoogleService {
	return &GoogleService{
		provider: provider,
		creds:    creds,
		lessons:  lessons,
		imports:  imports,
		logger:   logger,
		now:      time.Now,
	}
}

// AuthURL returns the provider authorization URL for the fixed scope set,
// with consent forced so every connect yields a refresh token.
func (s *GoogleService) AuthURL() string {
	return s.provider.AuthURL(xid.New().String())
}

// Connect completes the authorization-code exchange and stores the
// resulting credential, replacing any previous one for this user.
func (s *GoogleService) Connect(ctx context.Context, user *model.User, code string) error {
	if code == "" {
		return apperror.ValidationFailed("code", "authorization code required")
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return apperror.ProviderFailure("google authorization", err)
	}

	cred := &model.GoogleCredential{
		UserID:       user.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     s.provider.TokenURI(),
		ClientID:     s.provider.ClientID(),
		Scopes:       s.provider.GrantedScopes(),
		Expiry:       token.Expiry,
	}
	if err := s.creds.UpsertCredential(ctx, cred); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	s.logger.Info("google account connected", slog.String("userID", user.ID))
	return nil
}

// validCredential returns a usable credential for the user.
//
// No stored credential means the account was never connected: Unauthorized,
// so the frontend can prompt for a connect rather than show an outage. An
// expired credential triggers exactly one refresh, persisted before the
// credential is returned; a failed refresh is a provider failure. Two
// concurrent requests may both refresh — last writer wins in the store and
// the provider treats refresh as idempotent.
func (s *GoogleService) validCredential(ctx context.Context, user *model.User) (*model.GoogleCredential, error) {
	cred, err := s.creds.GetCredential(ctx, user.ID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthorized("google account not connected")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching credential: %w", err)
	}

	if !cred.Expired(s.now()) {
		return cred, nil
	}

	token, err := s.provider.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return nil, apperror.ProviderFailure("google token refresh", err)
	}

	cred.AccessToken = token.AccessToken
	cred.Expiry = token.Expiry
	if token.RefreshToken != "" {
		cred.RefreshToken = token.RefreshToken
	}
	if err := s.creds.UpsertCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("storing refreshed credential: %w", err)
	}

	s.logger.Info("google token refreshed", slog.String("userID", user.ID))
	return cred, nil
}

// ListPresentations returns the user's Drive presentations, up to 50.
func (s *GoogleService) ListPresentations(ctx context.Context, user *model.User) ([]google.File, error) {
	return s.listFiles(ctx, user, google.MimePresentation, "listing presentations")
}

// ListDocuments returns the user's Drive documents, up to 50.
func (s *GoogleService) ListDocuments(ctx context.Context, user *model.User) ([]google.File, error) {
	return s.listFiles(ctx, user, google.MimeDocument, "listing documents")
}

func (s *GoogleService) listFiles(ctx context.Context, user *model.User, mimeType, operation string) ([]google.File, error) {
	cred, err := s.validCredential(ctx, user)
	if err != nil {
		return nil, err
	}

	files, err := s.provider.ListFiles(ctx, cred.AccessToken, mimeType)
	if err != nil {
		return nil, apperror.ProviderFailure(operation, err)
	}
	return files, nil
}

// ImportPresentation fetches a presentation and persists a content snapshot.
//
// When a lesson id is supplied, the lesson's slides reference is updated
// only if the lesson belongs to this user — the update filters on teacher
// id, so a non-owned lesson is silently skipped rather than rejected.
func (s *GoogleService) ImportPresentation(ctx context.Context, user *model.User, slidesID, lessonID string) (*model.SlideImport, error) {
	if slidesID == "" {
		return nil, apperror.ValidationFailed("slides_id", "slides ID required")
	}

	cred, err := s.validCredential(ctx, user)
	if err != nil {
		return nil, err
	}

	pres, err := s.provider.GetPresentation(ctx, cred.AccessToken, slidesID)
	if err != nil {
		return nil, apperror.ProviderFailure("fetching presentation", err)
	}

	imp := &model.SlideImport{
		ID:             xid.New().String(),
		UserID:         user.ID,
		LessonID:       lessonID,
		GoogleSlidesID: slidesID,
		Title:          pres.Title,
		Content:        pres.Content,
		ImportedAt:     s.now().UTC(),
	}
	if err := s.imports.CreateSlideImport(ctx, imp); err != nil {
		return nil, fmt.Errorf("storing slide import: %w", err)
	}

	if lessonID != "" {
		matched, err := s.lessons.SetLessonSlidesRef(ctx, lessonID, user.ID, slidesID)
		if err != nil {
			return nil, fmt.Errorf("linking lesson: %w", err)
		}
		if !matched {
			s.logger.Warn("lesson not linked on slides import",
				slog.String("lessonID", lessonID),
				slog.String("userID", user.ID),
			)
		}
	}

	s.logger.Info("presentation imported",
		slog.String("userID", user.ID),
		slog.String("slidesID", slidesID),
	)
	return imp, nil
}

// ImportDocument fetches document metadata and, when a lesson id is given
// and the lesson belongs to this user, records the document reference on
// the lesson. Unlike presentations, no content snapshot is persisted.
func (s *GoogleService) ImportDocument(ctx context.Context, user *model.User, docsID, lessonID string) (*google.Document, error) {
	if docsID == "" {
		return nil, apperror.ValidationFailed("docs_id", "docs ID required")
	}

	cred, err := s.validCredential(ctx, user)
	if err != nil {
		return nil, err
	}

	doc, err := s.provider.GetDocument(ctx, cred.AccessToken, docsID)
	if err != nil {
		return nil, apperror.ProviderFailure("fetching document", err)
	}

	if lessonID != "" {
		matched, err := s.lessons.SetLessonDocsRef(ctx, lessonID, user.ID, docsID)
		if err != nil {
			return nil, fmt.Errorf("linking lesson: %w", err)
		}
		if !matched {
			s.logger.Warn("lesson not linked on docs import",
				slog.String("lessonID", lessonID),
				slog.String("userID", user.ID),
			)
		}
	}

	s.logger.Info("document imported",
		slog.String("userID", user.ID),
		slog.String("docsID", docsID),
	)
	return doc, nil
}
