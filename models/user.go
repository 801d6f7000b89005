package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the permission level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// SocialLinks holds the optional profile links of a user.
type SocialLinks struct {
	Website   string `json:"website,omitempty" bson:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	X         string `json:"x,omitempty" bson:"x,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
}

// User is an account record. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt int64         `json:"createdAt" bson:"created_at"`
	UpdatedAt int64         `json:"updatedAt" bson:"updated_at"`

	Username    string      `json:"username" bson:"username"`
	Email       string      `json:"email" bson:"email"`
	Password    string      `json:"-" bson:"password"`
	Role        Role        `json:"role" bson:"role"`
	FirstName   string      `json:"firstName,omitempty" bson:"first_name,omitempty"`
	LastName    string      `json:"lastName,omitempty" bson:"last_name,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks,omitempty" bson:"social_links,omitempty"`
}

// Public returns the subset of the user embedded in auth responses.
func (u User) Public() map[string]any {
	return map[string]any{
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(id)
}
