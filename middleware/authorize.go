package middleware

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
)

// Authorize gates a route to the given roles. It must run after
// Authenticate. The role is re-read from the credential store on every
// request, so a role change or account deletion takes effect immediately
// instead of waiting for the access token to expire.
func Authorize(users db.UserStore, log *slog.Logger, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)

		user, err := users.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				response.Fail(c, response.NotFound, response.CodeNotFound,
					"We could not find that user.")
				return
			}
			log.Error("failed to resolve user role", "error", err, "user_id", userID.Hex())
			response.Fail(c, response.InternalServerError, response.CodeInternalError,
				"We ran into an issue while authorizing this request.")
			return
		}

		if !slices.Contains(roles, user.Role) {
			log.Warn("request blocked by role check", "user_id", userID.Hex(), "role", user.Role)
			response.Fail(c, response.Forbidden, response.CodePermissionDenied,
				"You don't have permission to perform this action right now.")
			return
		}

		c.Next()
	}
}
