package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Authenticate(ctx context.Context, username, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if err := s.validator.ValidateRegister(req); err != nil {
		s.log.Debug("validation failed", "username", req.Username, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:  req.Username,
		Email:     req.Email,
		Country:   req.Country,
		Age:       req.Age,
		AvatarURL: req.AvatarURL,
		PlayStyle: req.PlayStyle,
		Password:  string(hash),
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	u.Password = ""

	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	if err := s.validator.ValidateLogin(username); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidAuth
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	u.Password = ""
	return u, nil
}
