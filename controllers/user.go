package controllers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/middleware"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles profile and account administration endpoints.
type UserController struct {
	users db.UserStore
	blogs db.BlogStore
	cfg   config.Config
	log   *slog.Logger
}

func NewUserController(users db.UserStore, blogs db.BlogStore, cfg config.Config, log *slog.Logger) *UserController {
	return &UserController{users: users, blogs: blogs, cfg: cfg, log: log}
}

// Current handles GET /users/current.
func (ctrl *UserController) Current(c *gin.Context) {
	user, err := ctrl.users.FindUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the current user.")
			return
		}
		ctrl.log.Error("failed to fetch current user", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching the current user.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Current user fetched successfully.", gin.H{
		"user": user,
	})
}

// UpdateCurrent handles PUT /users/current. Absent fields keep their current
// values; username and email changes are rejected when already in use.
func (ctrl *UserController) UpdateCurrent(c *gin.Context) {
	var form forms.UpdateUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.users.FindUserByID(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find the current user.")
			return
		}
		ctrl.log.Error("failed to fetch current user", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while updating the user.")
		return
	}

	if taken, msg := ctrl.identityTaken(ctx, user, form); taken {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, msg)
		return
	}

	if form.Username != "" {
		user.Username = form.Username
	}
	if form.Email != "" {
		user.Email = form.Email
	}
	if form.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			ctrl.log.Error("failed to hash password", "error", err)
			response.Fail(c, response.InternalServerError, response.CodeInternalError,
				"Something went wrong while updating the user.")
			return
		}
		user.Password = string(hash)
	}
	if form.FirstName != "" {
		user.FirstName = form.FirstName
	}
	if form.LastName != "" {
		user.LastName = form.LastName
	}
	if form.Website != "" {
		user.SocialLinks.Website = form.Website
	}
	if form.Facebook != "" {
		user.SocialLinks.Facebook = form.Facebook
	}
	if form.Instagram != "" {
		user.SocialLinks.Instagram = form.Instagram
	}
	if form.X != "" {
		user.SocialLinks.X = form.X
	}
	if form.YouTube != "" {
		user.SocialLinks.YouTube = form.YouTube
	}

	if err := ctrl.users.UpdateUser(ctx, user); err != nil {
		ctrl.log.Error("failed to update user", "error", err, "user_id", user.ID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while updating the user.")
		return
	}

	ctrl.log.Info("user updated", "user_id", user.ID.Hex())
	response.Send(c, response.OK, response.CodeSuccess, "User updated successfully.", gin.H{
		"user": user,
	})
}

// DeleteCurrent handles DELETE /users/current. The user's blogs go with the
// account.
func (ctrl *UserController) DeleteCurrent(c *gin.Context) {
	ctrl.deleteAccount(c, middleware.UserID(c))
}

// List handles GET /users (admin only).
func (ctrl *UserController) List(c *gin.Context) {
	limit, offset, err := listParams(c, ctrl.cfg)
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, err.Error())
		return
	}

	users, total, err := ctrl.users.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		ctrl.log.Error("failed to list users", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching users.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Users fetched successfully.", gin.H{
		"limit":  limit,
		"offset": offset,
		"total":  total,
		"users":  users,
	})
}

// Get handles GET /users/:userId (admin only).
func (ctrl *UserController) Get(c *gin.Context) {
	userID, err := models.ParseID(c.Param("userId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid user ID.")
		return
	}

	user, err := ctrl.users.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			response.Fail(c, response.NotFound, response.CodeNotFound,
				"We could not find that user.")
			return
		}
		ctrl.log.Error("failed to fetch user", "error", err, "user_id", userID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while fetching the user.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "User fetched successfully.", gin.H{
		"user": user,
	})
}

// Delete handles DELETE /users/:userId (admin only).
func (ctrl *UserController) Delete(c *gin.Context) {
	userID, err := models.ParseID(c.Param("userId"))
	if err != nil {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed, "Invalid user ID.")
		return
	}

	ctrl.deleteAccount(c, userID)
}

func (ctrl *UserController) deleteAccount(c *gin.Context, userID bson.ObjectID) {
	ctx := c.Request.Context()

	if err := ctrl.blogs.DeleteBlogsByAuthor(ctx, userID); err != nil {
		ctrl.log.Error("failed to delete user blogs", "error", err, "user_id", userID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while deleting the user.")
		return
	}

	if err := ctrl.users.DeleteUser(ctx, userID); err != nil {
		ctrl.log.Error("failed to delete user", "error", err, "user_id", userID.Hex())
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while deleting the user.")
		return
	}

	ctrl.log.Info("user account deleted", "user_id", userID.Hex())
	response.Send(c, response.NoContent, "", "", nil)
}

func (ctrl *UserController) identityTaken(ctx context.Context, user models.User, form forms.UpdateUserForm) (bool, string) {
	if form.Username != "" && form.Username != user.Username {
		taken, err := ctrl.users.UsernameExists(ctx, form.Username)
		if err == nil && taken {
			return true, "The username is already in use."
		}
	}
	if form.Email != "" && form.Email != user.Email {
		taken, err := ctrl.users.EmailExists(ctx, form.Email)
		if err == nil && taken {
			return true, "The email is already in use."
		}
	}
	return false, ""
}
