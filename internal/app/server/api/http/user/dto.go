package user

import "teamfinder/internal/domain/user"

type registerInput struct {
	Body user.RegisterRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	User user.User `json:"user"`
}

type loginInput struct {
	Body user.LoginRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}
