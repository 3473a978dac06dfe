package user

import "time"

type User struct {
	ID        string    `json:"id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"fullName" db:"full_name"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Profile is what the identity provider tells us about a user on sign-in.
type Profile struct {
	Email     string `validate:"required,email"`
	FullName  string
	AvatarURL string
}

type UserUp struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}
