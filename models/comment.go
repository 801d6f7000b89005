package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment belongs to exactly one blog and one user.
type Comment struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt int64         `json:"createdAt" bson:"created_at"`

	BlogID  bson.ObjectID `json:"blogId" bson:"blog_id"`
	UserID  bson.ObjectID `json:"userId" bson:"user_id"`
	Content string        `json:"content" bson:"content"`
}
