package user

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Country   string    `json:"country,omitempty"`
	Age       int       `json:"age,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	PlayStyle string    `json:"play_style,omitempty"`
	Password  string    `json:"-"` // хэш
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Email     string `json:"email,omitempty"`
	Country   string `json:"country,omitempty"`
	Age       int    `json:"age,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	PlayStyle string `json:"play_style,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
