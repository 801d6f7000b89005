package controllers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/middleware"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"github.com/morsechimwai/blog-api/util"
)

// BlogController handles blog CRUD. Drafts are only visible to admins; a
// non-admin author can still update or delete their own posts.
type BlogController struct {
	blogs db.BlogStore
	users db.UserStore
	cfg   config.Config
	log   *slog.Logger
}

func NewBlogController(blogs db.BlogStore, users db.UserStore, cfg config.Config, log *slog.Logger) *BlogController {
	return &BlogController{blogs: blogs, users: users, cfg: cfg, log: log}
}

// Create handles POST /blogs (admin only).
func (ctrl *BlogController) Create(c *gin.Context) {
	var form forms.CreateBlogForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	blog := models.Blog{
		Title:   form.Title,
		Slug:    util.GenerateSlug(form.Title),
		Content: form.Content,
		Status:  models.BlogStatus(form.Status),
		Author:  middleware.UserID(c),
	}
	if form.Banner != nil {
		blog.Banner = models.Banner{
			URL:      form.Banner.URL,
			Width:    form.Banner.Width,
			Height:   form.Banner.Height,
			PublicID: form.Banner.PublicID,
		}
	}

	blog, err := ctrl.blogs.CreateBlog(c.Request.Context(), blog)
	if err != nil {
		ctrl.log.Error("failed to create blog", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while creating the blog.")
		return
	}

	ctrl.log.Info("blog created", "blog_id", blog.ID.Hex(), "slug", blog.Slug)
	response.Send(c, response.Created, response.CodeCreated, "Blog created successfully.", gin.H{
		"blog": blog,
	})
}

// List handles GET /blogs. Non-admin callers only see published posts.
func (ctrl *BlogController) List(c *gin.Context) {
	filter, ok := ctrl.listFilter(c)
	if !ok {
		return
	}

	ctrl.respondList(c, filter)
}

// ByUser handles GET /blogs/user/:userId.
func (ctrl *BlogController) ByUser(c *gin.Context) {
	author, err := models.ParseID(c.Param("userId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid user ID.")
		return
	}

	filter, ok := ctrl.listFilter(c)
	if !ok {
		return
	}
	filter.Author = author

	ctrl.respondList(c, filter)
}

// BySlug handles GET /blogs/:slug. Draft posts are hidden from non-admins.
func (ctrl *BlogController) BySlug(c *gin.Context) {
	blog, err := ctrl.blogs.FindBlogBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find a blog with that slug.")
			return
		}
		ctrl.log.Error("failed to fetch blog", "error", err, "slug", c.Param("slug"))
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching the blog.")
		return
	}

	role, ok := ctrl.viewerRole(c)
	if !ok {
		return
	}

	if blog.Status == models.StatusDraft && role != models.RoleAdmin {
		ctrl.log.Warn("draft blog access blocked", "slug", blog.Slug, "user_id", middleware.UserID(c).Hex())
		response.Fail(c, response.Forbidden, response.CodePermissionDenied,
			"This blog is currently in draft. Please contact an admin if you need access.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Blog fetched successfully.", gin.H{
		"blog": blog,
	})
}

// Update handles PUT /blogs/:blogId. Allowed for the author or an admin.
func (ctrl *BlogController) Update(c *gin.Context) {
	var form forms.UpdateBlogForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	blog, ok := ctrl.ownedBlog(c, "update")
	if !ok {
		return
	}

	if form.Title != "" {
		blog.Title = form.Title
	}
	if form.Content != "" {
		blog.Content = form.Content
	}
	if form.Status != "" {
		blog.Status = models.BlogStatus(form.Status)
	}
	if form.Banner != nil {
		blog.Banner = models.Banner{
			URL:      form.Banner.URL,
			Width:    form.Banner.Width,
			Height:   form.Banner.Height,
			PublicID: form.Banner.PublicID,
		}
	}

	if err := ctrl.blogs.UpdateBlog(c.Request.Context(), blog); err != nil {
		ctrl.log.Error("failed to update blog", "error", err, "blog_id", blog.ID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while updating the blog.")
		return
	}

	ctrl.log.Info("blog updated", "blog_id", blog.ID.Hex())
	response.Send(c, response.OK, response.CodeSuccess, "Blog updated successfully.", gin.H{
		"blog": blog,
	})
}

// Delete handles DELETE /blogs/:blogId. Allowed for the author or an admin.
func (ctrl *BlogController) Delete(c *gin.Context) {
	blog, ok := ctrl.ownedBlog(c, "delete")
	if !ok {
		return
	}

	if err := ctrl.blogs.DeleteBlog(c.Request.Context(), blog.ID); err != nil {
		ctrl.log.Error("failed to delete blog", "error", err, "blog_id", blog.ID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while deleting the blog.")
		return
	}

	ctrl.log.Info("blog deleted", "blog_id", blog.ID.Hex())
	response.Send(c, response.NoContent, "", "", nil)
}

// listFilter builds the common listing filter: pagination plus the
// published-only restriction for non-admin viewers.
func (ctrl *BlogController) listFilter(c *gin.Context) (db.BlogFilter, bool) {
	limit, offset, err := listParams(c, ctrl.cfg)
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, err.Error())
		return db.BlogFilter{}, false
	}

	role, ok := ctrl.viewerRole(c)
	if !ok {
		return db.BlogFilter{}, false
	}

	filter := db.BlogFilter{Limit: limit, Offset: offset}
	if role != models.RoleAdmin {
		filter.Status = models.StatusPublished
	}
	return filter, true
}

func (ctrl *BlogController) respondList(c *gin.Context, filter db.BlogFilter) {
	blogs, total, err := ctrl.blogs.ListBlogs(c.Request.Context(), filter)
	if err != nil {
		ctrl.log.Error("failed to list blogs", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching blogs.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Blogs fetched successfully.", gin.H{
		"limit":  filter.Limit,
		"offset": filter.Offset,
		"total":  total,
		"blogs":  blogs,
	})
}

// viewerRole resolves the authenticated caller's current role.
func (ctrl *BlogController) viewerRole(c *gin.Context) (models.Role, bool) {
	user, err := ctrl.users.FindUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find that user.")
			return "", false
		}
		ctrl.log.Error("failed to resolve viewer role", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching blogs.")
		return "", false
	}
	return user.Role, true
}

// ownedBlog loads the target blog and enforces the author-or-admin rule.
func (ctrl *BlogController) ownedBlog(c *gin.Context, action string) (models.Blog, bool) {
	blogID, err := models.ParseID(c.Param("blogId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid blog ID.")
		return models.Blog{}, false
	}

	blog, err := ctrl.blogs.FindBlogByID(c.Request.Context(), blogID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the requested blog.")
			return models.Blog{}, false
		}
		ctrl.log.Error("failed to fetch blog", "error", err, "blog_id", blogID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching the blog.")
		return models.Blog{}, false
	}

	userID := middleware.UserID(c)
	role, ok := ctrl.viewerRole(c)
	if !ok {
		return models.Blog{}, false
	}

	if blog.Author != userID && role != models.RoleAdmin {
		ctrl.log.Warn("blog "+action+" blocked", "user_id", userID.Hex(), "blog_id", blog.ID.Hex())
		response.Fail(c, response.Forbidden, response.CodePermissionDenied,
			"You don't have permission to "+action+" this blog. Reach out to an admin if you need help.")
		return models.Blog{}, false
	}

	return blog, true
}
