package controllers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// LikeController handles likes on blog posts and keeps the blog's like
// counter in step.
type LikeController struct {
	likes db.LikeStore
	blogs db.BlogStore
	log   *slog.Logger
}

func NewLikeController(likes db.LikeStore, blogs db.BlogStore, log *slog.Logger) *LikeController {
	return &LikeController{likes: likes, blogs: blogs, log: log}
}

// Like handles POST /likes/blog/:blogId. Liking a blog twice is a
// validation error.
func (ctrl *LikeController) Like(c *gin.Context) {
	blogID, userID, ok := ctrl.likeTarget(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	blog, err := ctrl.blogs.FindBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the blog you want to like.")
			return
		}
		ctrl.log.Error("failed to fetch blog", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while liking the blog.")
		return
	}

	err = ctrl.likes.CreateLike(ctx, models.Like{BlogID: blog.ID, UserID: userID})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			response.Fail(c, response.BadRequest, response.CodeValidationFailed,
				"You've already liked this blog.")
			return
		}
		ctrl.log.Error("failed to create like", "error", err, "blog_id", blog.ID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while liking the blog.")
		return
	}

	if err := ctrl.blogs.AdjustBlogCounters(ctx, blog.ID, 1, 0); err != nil {
		ctrl.log.Error("failed to bump like counter", "error", err, "blog_id", blog.ID.Hex())
	}

	ctrl.log.Info("blog liked", "blog_id", blog.ID.Hex(), "user_id", userID.Hex())
	response.Send(c, response.OK, response.CodeSuccess, "Blog liked successfully.", gin.H{
		"likesCount": blog.LikesCount + 1,
	})
}

// Unlike handles DELETE /likes/blog/:blogId.
func (ctrl *LikeController) Unlike(c *gin.Context) {
	blogID, userID, ok := ctrl.likeTarget(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	like, err := ctrl.likes.FindLike(ctx, blogID, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find a like for this blog.")
			return
		}
		ctrl.log.Error("failed to fetch like", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while unliking the blog.")
		return
	}

	if err := ctrl.likes.DeleteLike(ctx, like.ID); err != nil {
		ctrl.log.Error("failed to delete like", "error", err, "like_id", like.ID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while unliking the blog.")
		return
	}

	if err := ctrl.blogs.AdjustBlogCounters(ctx, blogID, -1, 0); err != nil {
		ctrl.log.Error("failed to drop like counter", "error", err, "blog_id", blogID.Hex())
	}

	ctrl.log.Info("blog unliked", "blog_id", blogID.Hex(), "user_id", userID.Hex())
	response.Send(c, response.NoContent, "", "", nil)
}

// likeTarget parses the blog id from the path and the liking user id from
// the body.
func (ctrl *LikeController) likeTarget(c *gin.Context) (blogID, userID bson.ObjectID, ok bool) {
	blogID, err := models.ParseID(c.Param("blogId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid blog ID.")
		return blogID, userID, false
	}

	var form forms.LikeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return blogID, userID, false
	}

	userID, err = models.ParseID(form.UserID)
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid user ID.")
		return blogID, userID, false
	}

	return blogID, userID, true
}
