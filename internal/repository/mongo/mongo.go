// Package mongo implements the repository interfaces on MongoDB.
//
// The data model is document-shaped throughout: class rosters are arrays
// queried by membership, unfiltered lesson listings use $in over a set of
// class ids, and Google credentials are replace-or-insert upserts keyed on
// user_id. Records carry their own xid-generated `id` field; Mongo's `_id`
// is never exposed outside this package.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, matching the documents they hold one-to-one.
const (
	collUsers         = "users"
	collSessions      = "sessions"
	collClasses       = "classes"
	collLessons       = "lessons"
	collSlideImports  = "slide_imports"
	collMessages      = "messages"
	collNotifications = "notifications"
	collCredentials   = "google_credentials"
)

const connectTimeout = 10 * time.Second

// DB wraps a Mongo database handle and provides the repository methods.
// One DB value implements every repository interface; the server wires the
// same value into each service under the interface it needs.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection, and ensures indexes.
func New(ctx context.Context, url, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting to %s: %w", url, err)
	}

	// Connect does not dial eagerly; Ping forces a round trip so a bad URL
	// or unreachable server fails at startup, not on the first query.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: pinging %s: %w", url, err)
	}

	db := &DB{client: client, db: client.Database(database)}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ensuring indexes: %w", err)
	}

	return db, nil
}

// Close disconnects the underlying client. Call on server shutdown.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// ensureIndexes creates the indexes the access-control paths depend on.
// CreateMany is idempotent — existing indexes with the same spec are left
// alone, so this is safe to run on every startup.
func (db *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			// One account per email: lookup-or-create keys on this.
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		},
		collSessions: {
			// Read on every authenticated request.
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
		},
		collClasses: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "teacher_id", Value: 1}}},
			{Keys: bson.D{{Key: "students", Value: 1}}},
		},
		collLessons: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "class_id", Value: 1}}},
		},
		collNotifications: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		collCredentials: {
			// At most one credential record per user.
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range indexes {
		if _, err := db.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating %s indexes: %w", coll, err)
		}
	}
	return nil
}

// byNewest sorts a find by creation time, newest first — the order every
// listing endpoint returns.
func byNewest() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
