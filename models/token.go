package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// RefreshTokenRecord is a ledger entry for an issued refresh token. A record
// exists exactly as long as the token is still accepted for refresh: the
// ledger, not the token's own signature, is the source of truth for
// revocation. Records are removed on logout; there is no expiry sweep.
type RefreshTokenRecord struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Token     string        `bson:"token"`
	UserID    bson.ObjectID `bson:"user_id"`
	CreatedAt int64         `bson:"created_at"`
}
