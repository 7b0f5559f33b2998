package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	req := RegisterRequest{
		Username: "testuser",
		Password: "testpassword123",
		Country:  "AR",
	}

	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(User{}, ErrNotFound)
	// We can't predict the exact hash, so check the username and a non-empty hash
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u User) bool {
		return u.Username == "testuser" && u.Password != ""
	})).Return(int64(123), nil)

	u, err := service.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(123), u.ID)
	assert.Equal(t, "testuser", u.Username)
	assert.Empty(t, u.Password)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(User{ID: 1, Username: "testuser"}, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "testuser",
		Password: "testpassword123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Register_InvalidInput(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "ab",
		Password: "testpassword123",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Register(context.Background(), RegisterRequest{
		Username: "testuser",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("User")).Return(int64(0), errors.New("database error"))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "testuser",
		Password: "testpassword123",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	password := "testpassword123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := User{
		ID:       123,
		Username: "testuser",
		Password: string(hash),
	}

	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(stored, nil)

	u, err := service.Authenticate(context.Background(), "testuser", password)
	assert.NoError(t, err)
	assert.Equal(t, int64(123), u.ID)
	assert.Empty(t, u.Password)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_UserNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	mockRepo.On("FindByUsername", mock.Anything, "nonexistent").Return(User{}, ErrNotFound)

	_, err := service.Authenticate(context.Background(), "nonexistent", "testpassword123")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewValidator(), slog.Default())

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(User{ID: 1, Password: string(hash)}, nil)

	_, err = service.Authenticate(context.Background(), "testuser", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}
