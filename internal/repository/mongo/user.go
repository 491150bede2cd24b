package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// compile-time checks that *DB implements the auth-facing repositories
var (
	_ repository.UserRepository    = (*DB)(nil)
	_ repository.SessionRepository = (*DB)(nil)
)

func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if _, err := db.db.Collection(collUsers).InsertOne(ctx, user); err != nil {
		return fmt.Errorf("mongo: inserting user %s: %w", user.ID, err)
	}
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := db.db.Collection(collUsers).FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: fetching user %s: %w", id, err)
	}
	return &user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := db.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: fetching user by email: %w", err)
	}
	return &user, nil
}

// CreateSession always inserts: a user accumulates one session per login.
func (db *DB) CreateSession(ctx context.Context, session *model.Session) error {
	if _, err := db.db.Collection(collSessions).InsertOne(ctx, session); err != nil {
		return fmt.Errorf("mongo: inserting session for user %s: %w", session.UserID, err)
	}
	return nil
}

func (db *DB) GetSessionByToken(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := db.db.Collection(collSessions).FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("session", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: fetching session: %w", err)
	}
	return &session, nil
}
