package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/session"
	"teamfinder/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, err := h.service.Register(ctx, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			return nil, huma.Error409Conflict("username already taken")
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		default:
			h.log.Error("register failed", "error", err)
			return nil, huma.Error500InternalServerError("registration failed")
		}
	}

	return &registerOutput{
		Body: RegisterResponse{User: u},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("invalid credentials")
		}
		h.log.Error("login failed", "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	return &loginOutput{
		Body: LoginResponse{
			User:  u,
			Token: token,
		},
	}, nil
}
