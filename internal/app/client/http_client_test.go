package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"teamfinder/internal/app/client/config"
)

func newTestHTTPClient(t *testing.T, handler http.HandlerFunc) *httpClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerAddress: strings.TrimPrefix(srv.URL, "http://")}
	return NewHTTPClient(cfg, slog.Default())
}

func TestAPIError_Classification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		permanent bool
	}{
		{"400 bad request", 400, true},
		{"401 unauthorized", 401, true},
		{"404 not found", 404, true},
		{"409 conflict", 409, true},
		{"422 unprocessable", 422, true},
		{"408 request timeout", 408, false},
		{"429 too many requests", 429, false},
		{"500 server error", 500, false},
		{"503 unavailable", 503, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: tt.status}
			assert.Equal(t, tt.permanent, err.IsPermanent())
			assert.Equal(t, tt.permanent, IsPermanent(err))
		})
	}
}

func TestIsPermanent_TransportError(t *testing.T) {
	h := NewHTTPClient(&config.Config{ServerAddress: "127.0.0.1:1"}, slog.Default())

	err := h.HealthCheck(context.Background())
	require.Error(t, err)
	assert.False(t, IsPermanent(err), "транспортная ошибка классифицируется как временная")
}

func TestHTTPClient_GetEvent(t *testing.T) {
	h := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"title":"LAN party","max_participants":10,"participant_count":3}`))
	})

	e, err := h.GetEvent(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "LAN party", e.Title)
	assert.Equal(t, 7, e.Remaining())
}

func TestHTTPClient_JoinSendsBearerToken(t *testing.T) {
	h := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"event_id":42,"user_id":7,"nick":"Nick1","role":"Tank","confirmed":true}`))
	})
	h.SetToken("secret")

	p, err := h.JoinEvent(context.Background(), 42, "Nick1", "Tank")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.True(t, p.Confirmed)
}

func TestHTTPClient_HumaErrorBody(t *testing.T) {
	h := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"title":"Conflict","status":409,"detail":"user already registered for this event"}`))
	})

	_, err := h.JoinEvent(context.Background(), 42, "Nick1", "Tank")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "already registered")
	assert.True(t, apiErr.IsPermanent())
}

func TestHTTPClient_Login(t *testing.T) {
	h := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":7,"username":"player1"},"token":"tok123"}`))
	})

	u, token, err := h.Login(context.Background(), "player1", "password123")
	require.NoError(t, err)
	assert.Equal(t, "player1", u.Username)
	assert.Equal(t, "tok123", token)
	assert.Equal(t, "tok123", h.token, "токен запоминается для последующих запросов")
}

func TestHTTPClient_LeaveEvent(t *testing.T) {
	h := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/events/42/participants/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"left event"}`))
	})

	require.NoError(t, h.LeaveEvent(context.Background(), 42, 7))
}
