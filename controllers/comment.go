package controllers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/middleware"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
)

// CommentController handles comments on blog posts and keeps the blog's
// comment counter in step.
type CommentController struct {
	comments db.CommentStore
	blogs    db.BlogStore
	users    db.UserStore
	log      *slog.Logger
}

func NewCommentController(comments db.CommentStore, blogs db.BlogStore, users db.UserStore, log *slog.Logger) *CommentController {
	return &CommentController{comments: comments, blogs: blogs, users: users, log: log}
}

// Create handles POST /comments/blog/:blogId.
func (ctrl *CommentController) Create(c *gin.Context) {
	blogID, err := models.ParseID(c.Param("blogId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid blog ID.")
		return
	}

	var form forms.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	ctx := c.Request.Context()

	blog, err := ctrl.blogs.FindBlogByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the blog you want to comment on.")
			return
		}
		ctrl.log.Error("failed to fetch blog", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while adding the comment.")
		return
	}

	comment, err := ctrl.comments.CreateComment(ctx, models.Comment{
		BlogID:  blog.ID,
		UserID:  middleware.UserID(c),
		Content: form.Content,
	})
	if err != nil {
		ctrl.log.Error("failed to create comment", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while adding the comment.")
		return
	}

	if err := ctrl.blogs.AdjustBlogCounters(ctx, blog.ID, 0, 1); err != nil {
		ctrl.log.Error("failed to bump comment counter", "error", err, "blog_id", blog.ID.Hex())
	}

	ctrl.log.Info("comment created", "comment_id", comment.ID.Hex(), "blog_id", blog.ID.Hex())
	response.Send(c, response.Created, response.CodeCreated, "Comment added successfully.", gin.H{
		"comment": comment,
	})
}

// ListByBlog handles GET /comments/blog/:blogId, newest first.
func (ctrl *CommentController) ListByBlog(c *gin.Context) {
	blogID, err := models.ParseID(c.Param("blogId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid blog ID.")
		return
	}

	ctx := c.Request.Context()

	if _, err := ctrl.blogs.FindBlogByID(ctx, blogID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the requested blog.")
			return
		}
		ctrl.log.Error("failed to fetch blog", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching comments.")
		return
	}

	comments, err := ctrl.comments.ListCommentsByBlog(ctx, blogID)
	if err != nil {
		ctrl.log.Error("failed to list comments", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching comments.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Comments fetched successfully.", gin.H{
		"comments": comments,
	})
}

// Delete handles DELETE /comments/:commentId. Allowed for the comment's
// owner or an admin.
func (ctrl *CommentController) Delete(c *gin.Context) {
	commentID, err := models.ParseID(c.Param("commentId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid comment ID.")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	comment, err := ctrl.comments.FindCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the comment you are trying to delete.")
			return
		}
		ctrl.log.Error("failed to fetch comment", "error", err, "comment_id", commentID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while deleting the comment.")
		return
	}

	if comment.UserID != userID {
		user, err := ctrl.users.FindUserByID(ctx, userID)
		if err != nil || user.Role != models.RoleAdmin {
			ctrl.log.Warn("comment delete blocked", "user_id", userID.Hex(), "comment_id", commentID.Hex())
			response.Fail(c, response.Forbidden, response.CodePermissionDenied,
				"You don't have permission to remove this comment. Please contact an admin if this seems wrong.")
			return
		}
	}

	if err := ctrl.comments.DeleteComment(ctx, commentID); err != nil {
		ctrl.log.Error("failed to delete comment", "error", err, "comment_id", commentID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while deleting the comment.")
		return
	}

	if err := ctrl.blogs.AdjustBlogCounters(ctx, comment.BlogID, 0, -1); err != nil {
		ctrl.log.Error("failed to drop comment counter", "error", err, "blog_id", comment.BlogID.Hex())
	}

	ctrl.log.Info("comment deleted", "comment_id", commentID.Hex())
	response.Send(c, response.NoContent, "", "", nil)
}
