package event

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"teamfinder/internal/app/server/api/http/middleware/auth"
	"teamfinder/internal/domain/event"
)

type Handler struct {
	service    event.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service event.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.participantsOp(), h.participants)
	huma.Register(api, h.joinOp(), h.join)
	huma.Register(api, h.leaveOp(), h.leave)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	events, err := h.service.List(ctx)
	if err != nil {
		h.log.Error("list events", "error", err)
		return nil, huma.Error500InternalServerError("failed to list events")
	}
	return &listOutput{Body: events}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	created, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		if errors.Is(err, event.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("create event", "error", err)
		return nil, huma.Error500InternalServerError("failed to create event")
	}

	return &createOutput{Body: created}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	e, err := h.service.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return nil, huma.Error404NotFound("event not found")
		}
		h.log.Error("get event", "event_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to load event")
	}
	return &getOutput{Body: e}, nil
}

func (h *Handler) participants(ctx context.Context, input *participantsInput) (*participantsOutput, error) {
	participants, err := h.service.Participants(ctx, input.ID)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return nil, huma.Error404NotFound("event not found")
		}
		h.log.Error("list participants", "event_id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to load participants")
	}
	return &participantsOutput{Body: participants}, nil
}

func (h *Handler) join(ctx context.Context, input *joinInput) (*joinOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	p, err := h.service.Join(ctx, input.ID, event.JoinRequest{
		UserID: userID,
		Nick:   input.Body.Nick,
		Role:   input.Body.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			return nil, huma.Error404NotFound("event not found")
		case errors.Is(err, event.ErrAlreadyRegistered):
			return nil, huma.Error409Conflict("user already registered for this event")
		case errors.Is(err, event.ErrEventFull):
			return nil, huma.Error422UnprocessableEntity("event is full")
		case errors.Is(err, event.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		default:
			h.log.Error("join event", "event_id", input.ID, "error", err)
			return nil, huma.Error500InternalServerError("failed to join event")
		}
	}

	return &joinOutput{Body: p}, nil
}

func (h *Handler) leave(ctx context.Context, input *leaveInput) (*leaveOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	// Users can only remove their own registration
	if userID != input.UserID {
		return nil, huma.Error403Forbidden("cannot remove another user's registration")
	}

	if err := h.service.Leave(ctx, input.ID, input.UserID); err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			return nil, huma.Error404NotFound("event not found")
		case errors.Is(err, event.ErrNotRegistered):
			return nil, huma.Error404NotFound("user is not registered for this event")
		default:
			h.log.Error("leave event", "event_id", input.ID, "error", err)
			return nil, huma.Error500InternalServerError("failed to leave event")
		}
	}

	return &leaveOutput{Body: LeaveResponse{Message: "left event"}}, nil
}
