package db

import (
	"context"
	"time"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (m *Mongo) CreateBlog(ctx context.Context, blog models.Blog) (models.Blog, error) {
	now := time.Now().Unix()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	if blog.Status == "" {
		blog.Status = models.StatusDraft
	}

	result, err := m.coll(blogColl).InsertOne(ctx, blog)
	if err != nil {
		return models.Blog{}, mapErr(err)
	}

	blog.ID = result.InsertedID.(bson.ObjectID)
	return blog, nil
}

func (m *Mongo) FindBlogByID(ctx context.Context, id bson.ObjectID) (blog models.Blog, err error) {
	err = m.coll(blogColl).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&blog)
	return blog, mapErr(err)
}

func (m *Mongo) FindBlogBySlug(ctx context.Context, slug string) (blog models.Blog, err error) {
	err = m.coll(blogColl).
		FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).
		Decode(&blog)
	return blog, mapErr(err)
}

func (m *Mongo) ListBlogs(ctx context.Context, filter BlogFilter) ([]models.Blog, int64, error) {
	query := bson.D{}
	if !filter.Author.IsZero() {
		query = append(query, bson.E{Key: "author", Value: filter.Author})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}

	coll := m.coll(blogColl)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	opts := options.Find().
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, mapErr(err)
	}
	return blogs, total, nil
}

func (m *Mongo) UpdateBlog(ctx context.Context, blog models.Blog) error {
	blog.UpdatedAt = time.Now().Unix()

	result, err := m.coll(blogColl).ReplaceOne(ctx, bson.D{{Key: "_id", Value: blog.ID}}, blog)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteBlog(ctx context.Context, id bson.ObjectID) error {
	_, err := m.coll(blogColl).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return mapErr(err)
}

func (m *Mongo) DeleteBlogsByAuthor(ctx context.Context, author bson.ObjectID) error {
	_, err := m.coll(blogColl).DeleteMany(ctx, bson.D{{Key: "author", Value: author}})
	return mapErr(err)
}

func (m *Mongo) AdjustBlogCounters(ctx context.Context, id bson.ObjectID, likes, comments int64) error {
	update := bson.D{{Key: "$inc", Value: bson.D{
		{Key: "likes_count", Value: likes},
		{Key: "comments_count", Value: comments},
	}}}

	result, err := m.coll(blogColl).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
