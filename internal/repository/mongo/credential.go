package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

var _ repository.CredentialRepository = (*DB)(nil)

func (db *DB) GetCredential(ctx context.Context, userID string) (*model.GoogleCredential, error) {
	var cred model.GoogleCredential
	err := db.db.Collection(collCredentials).FindOne(ctx, bson.M{"user_id": userID}).Decode(&cred)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("google credential", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: fetching credential for user %s: %w", userID, err)
	}
	return &cred, nil
}

// UpsertCredential replaces the whole record keyed on user_id. Concurrent
// refreshes for the same user race benignly: last writer wins and the final
// state is a usable credential either way.
func (db *DB) UpsertCredential(ctx context.Context, cred *model.GoogleCredential) error {
	_, err := db.db.Collection(collCredentials).ReplaceOne(ctx,
		bson.M{"user_id": cred.UserID},
		cred,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: upserting credential for user %s: %w", cred.UserID, err)
	}
	return nil
}
