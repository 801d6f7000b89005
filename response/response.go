// Package response renders the uniform API body shared by every handler:
//
//	{ "success": bool, "code": string, "message": string, "data"?, "error"?, "detail"? }
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status pairs an HTTP status with its canonical code string.
type Status struct {
	Code string
	HTTP int
}

var (
	OK                  = Status{"OK", http.StatusOK}
	Created             = Status{"CREATED", http.StatusCreated}
	NoContent           = Status{"NO_CONTENT", http.StatusNoContent}
	BadRequest          = Status{"BAD_REQUEST", http.StatusBadRequest}
	Unauthorized        = Status{"UNAUTHORIZED", http.StatusUnauthorized}
	Forbidden           = Status{"FORBIDDEN", http.StatusForbidden}
	NotFound            = Status{"NOT_FOUND", http.StatusNotFound}
	PayloadTooLarge     = Status{"PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge}
	InternalServerError = Status{"INTERNAL_SERVER_ERROR", http.StatusInternalServerError}
)

// Body codes used across the API.
const (
	CodeSuccess          = "success"
	CodeCreated          = "created"
	CodeValidationFailed = "validation_failed"
	CodePermissionDenied = "permission_denied"
	CodeNotFound         = "not_found"
	CodeInternalError    = "internal_error"
	CodeTooManyRequests  = "too_many_requests"
)

// Body is the wire shape of every non-204 response.
type Body struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Send writes a success body. A NoContent status sends no body at all.
func Send(c *gin.Context, st Status, code, message string, data any) {
	if st.HTTP == http.StatusNoContent {
		c.Status(st.HTTP)
		return
	}
	if code == "" {
		code = st.Code
	}
	c.JSON(st.HTTP, Body{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Fail writes an error body and aborts the handler chain.
func Fail(c *gin.Context, st Status, code, message string) {
	abort(c, st, Body{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// FailDetail is Fail with an extra machine-oriented detail string, used for
// validation errors.
func FailDetail(c *gin.Context, st Status, code, message, detail string) {
	abort(c, st, Body{
		Success: false,
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

func abort(c *gin.Context, st Status, body Body) {
	if body.Code == "" {
		body.Code = st.Code
	}
	if body.Message == "" {
		body.Message = body.Code
	}
	c.AbortWithStatusJSON(st.HTTP, body)
}
