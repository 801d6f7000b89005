package db

import (
	"context"
	"time"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (m *Mongo) CreateLike(ctx context.Context, like models.Like) error {
	like.CreatedAt = time.Now().Unix()

	// The unique (blog_id, user_id) index turns a double like into
	// ErrDuplicate.
	_, err := m.coll(likeColl).InsertOne(ctx, like)
	return mapErr(err)
}

func (m *Mongo) FindLike(ctx context.Context, blogID, userID bson.ObjectID) (like models.Like, err error) {
	filter := bson.D{
		{Key: "blog_id", Value: blogID},
		{Key: "user_id", Value: userID},
	}
	err = m.coll(likeColl).FindOne(ctx, filter).Decode(&like)
	return like, mapErr(err)
}

func (m *Mongo) DeleteLike(ctx context.Context, id bson.ObjectID) error {
	_, err := m.coll(likeColl).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return mapErr(err)
}
