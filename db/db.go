package db

import (
	"context"
	"errors"

	"github.com/morsechimwai/blog-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// CreateUser carries the fields needed to insert a new account.
type CreateUser struct {
	Username string
	Email    string
	PwdHash  string
	Role     models.Role
}

// UserStore is the credential store consumed by the session manager and the
// authorization middleware.
type UserStore interface {
	CreateUser(ctx context.Context, in CreateUser) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id bson.ObjectID) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id bson.ObjectID) error
}

// TokenLedger persists issued refresh tokens. Presence of a token in the
// ledger is what makes it valid for refresh, independent of its signature.
type TokenLedger interface {
	InsertToken(ctx context.Context, token string, userID bson.ObjectID) error
	TokenExists(ctx context.Context, token string) (bool, error)
	DeleteToken(ctx context.Context, token string) error
}

// BlogFilter narrows a blog listing. Zero values mean "any".
type BlogFilter struct {
	Author bson.ObjectID
	Status models.BlogStatus
	Limit  int
	Offset int
}

type BlogStore interface {
	CreateBlog(ctx context.Context, blog models.Blog) (models.Blog, error)
	FindBlogByID(ctx context.Context, id bson.ObjectID) (models.Blog, error)
	FindBlogBySlug(ctx context.Context, slug string) (models.Blog, error)
	ListBlogs(ctx context.Context, filter BlogFilter) ([]models.Blog, int64, error)
	UpdateBlog(ctx context.Context, blog models.Blog) error
	DeleteBlog(ctx context.Context, id bson.ObjectID) error
	DeleteBlogsByAuthor(ctx context.Context, author bson.ObjectID) error
	// AdjustBlogCounters atomically increments the like/comment counters.
	AdjustBlogCounters(ctx context.Context, id bson.ObjectID, likes, comments int64) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	FindCommentByID(ctx context.Context, id bson.ObjectID) (models.Comment, error)
	ListCommentsByBlog(ctx context.Context, blogID bson.ObjectID) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id bson.ObjectID) error
}

type LikeStore interface {
	CreateLike(ctx context.Context, like models.Like) error
	FindLike(ctx context.Context, blogID, userID bson.ObjectID) (models.Like, error)
	DeleteLike(ctx context.Context, id bson.ObjectID) error
}
