package forms

// BannerForm carries the already-uploaded cover image reference; the upload
// pipeline itself lives outside this API.
type BannerForm struct {
	URL      string `form:"url" json:"url" binding:"required,url,max=200"`
	Width    int    `form:"width" json:"width" binding:"omitempty,min=1"`
	Height   int    `form:"height" json:"height" binding:"omitempty,min=1"`
	PublicID string `form:"publicId" json:"publicId" binding:"omitempty,max=200"`
}

// CreateBlogForm is the body of POST /blogs.
type CreateBlogForm struct {
	Title   string      `form:"title" json:"title" binding:"required,max=180"`
	Content string      `form:"content" json:"content" binding:"required"`
	Status  string      `form:"status" json:"status" binding:"omitempty,oneof=draft published"`
	Banner  *BannerForm `form:"banner" json:"banner" binding:"omitempty"`
}

// UpdateBlogForm is the body of PUT /blogs/:blogId. Every field is optional;
// absent fields keep their current value.
type UpdateBlogForm struct {
	Title   string      `form:"title" json:"title" binding:"omitempty,max=180"`
	Content string      `form:"content" json:"content" binding:"omitempty"`
	Status  string      `form:"status" json:"status" binding:"omitempty,oneof=draft published"`
	Banner  *BannerForm `form:"banner" json:"banner" binding:"omitempty"`
}
