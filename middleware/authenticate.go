package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"github.com/morsechimwai/blog-api/service"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ctxUserID is the gin context key under which Authenticate stores the
// verified user id.
const ctxUserID = "userID"

// UserID returns the authenticated user's id. It panics when called on a
// route that is not behind Authenticate.
func UserID(c *gin.Context) bson.ObjectID {
	return c.MustGet(ctxUserID).(bson.ObjectID)
}

// Authenticate verifies the bearer access token and stores the user id in
// the request context. Expired and invalid tokens get distinct messages so a
// client can tell "refresh and retry" from "log in again".
func Authenticate(codec *service.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
				"We couldn't find a valid access token. Please sign in and try again.")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := codec.VerifyAccessToken(token)
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
				"Your access token has expired. Please use your refresh token to get a new one.")
			return
		case errors.Is(err, service.ErrTokenInvalid):
			response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
				"The access token provided is invalid.")
			return
		case err != nil:
			response.Fail(c, response.InternalServerError, response.CodeInternalError,
				"We ran into a problem while verifying your access token.")
			return
		}

		userID, err := models.ParseID(claims.UserID)
		if err != nil {
			response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
				"The access token provided is invalid.")
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}
