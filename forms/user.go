package forms

// UpdateUserForm is the body of PUT /users/current. Every field is optional.
type UpdateUserForm struct {
	Username  string `form:"username" json:"username" binding:"omitempty,max=20"`
	Email     string `form:"email" json:"email" binding:"omitempty,email,max=50"`
	Password  string `form:"password" json:"password" binding:"omitempty,min=8,max=72"`
	FirstName string `form:"firstName" json:"firstName" binding:"omitempty,max=20"`
	LastName  string `form:"lastName" json:"lastName" binding:"omitempty,max=20"`

	Website   string `form:"website" json:"website" binding:"omitempty,url,max=100"`
	Facebook  string `form:"facebook" json:"facebook" binding:"omitempty,url,max=100"`
	Instagram string `form:"instagram" json:"instagram" binding:"omitempty,url,max=100"`
	X         string `form:"x" json:"x" binding:"omitempty,url,max=100"`
	YouTube   string `form:"youtube" json:"youtube" binding:"omitempty,url,max=100"`
}
