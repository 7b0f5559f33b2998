package event

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"teamfinder/internal/app/server/api/http/middleware/auth"
	"teamfinder/internal/domain/event"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, organizerID int64, req event.CreateRequest) (event.Event, error) {
	args := m.Called(ctx, organizerID, req)
	return args.Get(0).(event.Event), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id int64) (event.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(event.Event), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]event.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockService) Participants(ctx context.Context, eventID int64) ([]event.Participant, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]event.Participant), args.Error(1)
}

func (m *MockService) Join(ctx context.Context, eventID int64, req event.JoinRequest) (event.Participant, error) {
	args := m.Called(ctx, eventID, req)
	return args.Get(0).(event.Participant), args.Error(1)
}

func (m *MockService) Leave(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func authedCtx(userID int64) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_get(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	svc.On("Get", mock.Anything, int64(42)).Return(event.Event{ID: 42, Title: "LAN party"}, nil)

	out, err := handler.get(context.Background(), &getInput{ID: 42})
	assert.NoError(t, err)
	assert.Equal(t, "LAN party", out.Body.Title)
}

func TestHandler_get_NotFound(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	svc.On("Get", mock.Anything, int64(99)).Return(event.Event{}, event.ErrNotFound)

	_, err := handler.get(context.Background(), &getInput{ID: 99})
	assert.Error(t, err)

	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_join_RequiresAuth(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	_, err := handler.join(context.Background(), &joinInput{ID: 42, Body: JoinBody{Nick: "Nick1", Role: "Tank"}})

	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.GetStatus())
}

func TestHandler_join_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"already registered maps to 409", event.ErrAlreadyRegistered, 409},
		{"event full maps to 422", event.ErrEventFull, 422},
		{"not found maps to 404", event.ErrNotFound, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

			svc.On("Join", mock.Anything, int64(42), mock.Anything).Return(event.Participant{}, tt.serviceErr)

			_, err := handler.join(authedCtx(7), &joinInput{ID: 42, Body: JoinBody{Nick: "Nick1", Role: "Tank"}})

			var statusErr huma.StatusError
			assert.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.wantStatus, statusErr.GetStatus())
		})
	}
}

func TestHandler_join_UsesAuthenticatedUser(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	svc.On("Join", mock.Anything, int64(42), event.JoinRequest{UserID: 7, Nick: "Nick1", Role: "Tank"}).
		Return(event.Participant{ID: 1, EventID: 42, UserID: 7}, nil)

	out, err := handler.join(authedCtx(7), &joinInput{ID: 42, Body: JoinBody{Nick: "Nick1", Role: "Tank"}})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.Body.UserID)

	svc.AssertExpectations(t)
}

func TestHandler_leave_ForbidsOtherUsers(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	_, err := handler.leave(authedCtx(7), &leaveInput{ID: 42, UserID: 8})

	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 403, statusErr.GetStatus())
}

func TestHandler_leave_NotRegistered(t *testing.T) {
	svc := new(MockService)
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	svc.On("Leave", mock.Anything, int64(42), int64(7)).Return(event.ErrNotRegistered)

	_, err := handler.leave(authedCtx(7), &leaveInput{ID: 42, UserID: 7})

	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}
