package db

import (
	"context"
	"strings"
	"time"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (m *Mongo) CreateUser(ctx context.Context, in CreateUser) (models.User, error) {
	now := time.Now().Unix()
	user := models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Username:  in.Username,
		Email:     normalizeEmail(in.Email),
		Password:  in.PwdHash,
		Role:      in.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	result, err := m.coll(userColl).InsertOne(ctx, user)
	if err != nil {
		return models.User{}, mapErr(err)
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (user models.User, err error) {
	err = m.coll(userColl).
		FindOne(ctx, bson.D{{Key: "email", Value: normalizeEmail(email)}}).
		Decode(&user)
	return user, mapErr(err)
}

func (m *Mongo) FindUserByID(ctx context.Context, id bson.ObjectID) (user models.User, err error) {
	err = m.coll(userColl).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&user)
	return user, mapErr(err)
}

func (m *Mongo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.exists(ctx, userColl, bson.D{{Key: "email", Value: normalizeEmail(email)}})
}

func (m *Mongo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.exists(ctx, userColl, bson.D{{Key: "username", Value: username}})
}

func (m *Mongo) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	coll := m.coll(userColl)

	total, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, mapErr(err)
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, mapErr(err)
	}
	return users, total, nil
}

func (m *Mongo) UpdateUser(ctx context.Context, user models.User) error {
	user.UpdatedAt = time.Now().Unix()
	user.Email = normalizeEmail(user.Email)

	result, err := m.coll(userColl).ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if err != nil {
		return mapErr(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	_, err := m.coll(userColl).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return mapErr(err)
}

func (m *Mongo) exists(ctx context.Context, coll string, filter bson.D) (bool, error) {
	count, err := m.coll(coll).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, mapErr(err)
	}
	return count > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
