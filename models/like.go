package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like marks that a user liked a blog. At most one like may exist per
// (blog, user) pair, enforced by a unique index.
type Like struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt int64         `json:"createdAt" bson:"created_at"`

	BlogID bson.ObjectID `json:"blogId" bson:"blog_id"`
	UserID bson.ObjectID `json:"userId" bson:"user_id"`
}
