package forms

import (
	"github.com/morsechimwai/blog-api/models"
)

// RegisterForm is the body of POST /auth/register. Role defaults to "user"
// when omitted; registering as admin additionally requires the email to be
// on the server's allow-list.
type RegisterForm struct {
	Email    string      `form:"email" json:"email" binding:"required,email,max=50"`
	Password string      `form:"password" json:"password" binding:"required,min=8,max=72"`
	Role     models.Role `form:"role" json:"role" binding:"omitempty,oneof=admin user"`
}

// LoginForm is the body of POST /auth/login.
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required,email,max=50"`
	Password string `form:"password" json:"password" binding:"required,min=8,max=72"`
}
