package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// verify Mongo implements the store interfaces at compile time
var (
	_ UserStore    = (*Mongo)(nil)
	_ TokenLedger  = (*Mongo)(nil)
	_ BlogStore    = (*Mongo)(nil)
	_ CommentStore = (*Mongo)(nil)
	_ LikeStore    = (*Mongo)(nil)
)

const (
	userColl    = "users"
	tokenColl   = "tokens"
	blogColl    = "blogs"
	commentColl = "comments"
	likeColl    = "likes"
)

// Mongo backs every store interface with a single MongoDB database.
type Mongo struct {
	client *mongo.Client
	name   string
}

// Connect opens a client for the given URI and verifies it with a ping.
func Connect(ctx context.Context, uri, name string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetAppName("blog-api"))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Mongo{client: client, name: name}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) coll(name string) *mongo.Collection {
	return m.client.Database(m.name).Collection(name)
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		userColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		tokenColl: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique},
		},
		blogColl: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "author", Value: 1}}},
		},
		commentColl: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}}},
		},
		likeColl: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range specs {
		if _, err := m.coll(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}

// mapErr translates driver errors into the package sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
