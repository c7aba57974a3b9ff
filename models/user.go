package models

import "time"

// User roles.
const (
	RoleClient   = "Client"
	RoleProvider = "Provider"
)

// User represents a registered account, either a client booking services or a
// provider offering them.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	ProfileImage string    `bson:"profile_image" json:"profileImage"`
	Role         string    `bson:"role" json:"role"`
	BusinessName string    `bson:"business_name,omitempty" json:"businessName,omitempty"`
	IsVerified   bool      `bson:"is_verified" json:"isVerified"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicView strips credential fields for API responses that embed users.
func (u *User) PublicView() map[string]any {
	return map[string]any{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"phone":        u.Phone,
		"role":         u.Role,
		"profileImage": u.ProfileImage,
	}
}
