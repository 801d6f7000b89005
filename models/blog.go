package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
)

// Banner describes the blog cover image stored at an external provider.
// PublicID is the provider handle and is kept out of JSON responses.
type Banner struct {
	URL      string `json:"url" bson:"url"`
	Width    int    `json:"width,omitempty" bson:"width,omitempty"`
	Height   int    `json:"height,omitempty" bson:"height,omitempty"`
	PublicID string `json:"-" bson:"public_id,omitempty"`
}

// Blog is a single post. Slug is unique and derived from the title at
// creation time.
type Blog struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt int64         `json:"createdAt" bson:"created_at"`
	UpdatedAt int64         `json:"updatedAt" bson:"updated_at"`

	Title   string        `json:"title" bson:"title"`
	Slug    string        `json:"slug" bson:"slug"`
	Content string        `json:"content" bson:"content"`
	Banner  Banner        `json:"banner,omitempty" bson:"banner,omitempty"`
	Author  bson.ObjectID `json:"author" bson:"author"`
	Status  BlogStatus    `json:"status" bson:"status"`

	LikesCount    int64 `json:"likesCount" bson:"likes_count"`
	CommentsCount int64 `json:"commentsCount" bson:"comments_count"`
}
