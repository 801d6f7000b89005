package forms

// LikeForm is the body of POST and DELETE /likes/blog/:blogId.
type LikeForm struct {
	UserID string `form:"userId" json:"userId" binding:"required,len=24,hexadecimal"`
}
