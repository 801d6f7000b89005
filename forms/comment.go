package forms

// CommentForm is the body of POST /comments/blog/:blogId.
type CommentForm struct {
	Content string `form:"content" json:"content" binding:"required,max=1000"`
}
