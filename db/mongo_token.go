package db

import (
	"context"
	"time"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (m *Mongo) InsertToken(ctx context.Context, token string, userID bson.ObjectID) error {
	record := models.RefreshTokenRecord{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}

	_, err := m.coll(tokenColl).InsertOne(ctx, record)
	return mapErr(err)
}

func (m *Mongo) TokenExists(ctx context.Context, token string) (bool, error) {
	return m.exists(ctx, tokenColl, bson.D{{Key: "token", Value: token}})
}

// DeleteToken removes a ledger record. Deleting a token that is already gone
// is not an error, which keeps logout idempotent.
func (m *Mongo) DeleteToken(ctx context.Context, token string) error {
	_, err := m.coll(tokenColl).DeleteOne(ctx, bson.D{{Key: "token", Value: token}})
	return mapErr(err)
}
