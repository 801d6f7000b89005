package db

import (
	"context"
	"time"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	comment.CreatedAt = time.Now().Unix()

	result, err := m.coll(commentColl).InsertOne(ctx, comment)
	if err != nil {
		return models.Comment{}, mapErr(err)
	}

	comment.ID = result.InsertedID.(bson.ObjectID)
	return comment, nil
}

func (m *Mongo) FindCommentByID(ctx context.Context, id bson.ObjectID) (comment models.Comment, err error) {
	err = m.coll(commentColl).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&comment)
	return comment, mapErr(err)
}

func (m *Mongo) ListCommentsByBlog(ctx context.Context, blogID bson.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.coll(commentColl).Find(ctx, bson.D{{Key: "blog_id", Value: blogID}}, opts)
	if err != nil {
		return nil, mapErr(err)
	}

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, mapErr(err)
	}
	return comments, nil
}

func (m *Mongo) DeleteComment(ctx context.Context, id bson.ObjectID) error {
	_, err := m.coll(commentColl).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return mapErr(err)
}
