package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"teamfinder/internal/app/client/config"
	"teamfinder/internal/domain/event"
	"teamfinder/internal/domain/user"
)

// APIError — структурированная ошибка удаленного сервиса. Классификация
// постоянная/временная строится на статус-коде, а не на тексте сообщения.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("сервер вернул %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("сервер вернул статус %d", e.StatusCode)
}

// IsPermanent сообщает, что действие никогда не пройдет в текущем виде:
// клиентские ошибки 4xx, кроме 408 (таймаут) и 429 (rate limit).
func (e *APIError) IsPermanent() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests {
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsPermanent классифицирует произвольную ошибку: транспортные ошибки и
// 5xx — временные, подлежат повтору.
func IsPermanent(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsPermanent()
}

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "Teamfinder-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}

	return nil
}

// Register регистрирует пользователя на сервере
func (h *httpClient) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/users/register", req)
	if err != nil {
		return user.User{}, err
	}

	var registerResp struct {
		User user.User `json:"user"`
	}
	if err := h.parseResponse(resp, &registerResp); err != nil {
		return user.User{}, err
	}

	return registerResp.User, nil
}

// Login выполняет вход и возвращает пользователя с токеном
func (h *httpClient) Login(ctx context.Context, username, password string) (user.User, string, error) {
	req := user.LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/users/login", req)
	if err != nil {
		return user.User{}, "", err
	}

	var loginResp struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return user.User{}, "", err
	}

	h.SetToken(loginResp.Token)
	return loginResp.User, loginResp.Token, nil
}

// GetEvent получает событие с сервера
func (h *httpClient) GetEvent(ctx context.Context, eventID int64) (event.Event, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/events/"+strconv.FormatInt(eventID, 10), nil)
	if err != nil {
		return event.Event{}, err
	}

	var e event.Event
	if err := h.parseResponse(resp, &e); err != nil {
		return event.Event{}, err
	}
	return e, nil
}

// ListEvents получает список событий
func (h *httpClient) ListEvents(ctx context.Context) ([]event.Event, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/events", nil)
	if err != nil {
		return nil, err
	}

	var events []event.Event
	if err := h.parseResponse(resp, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetParticipants получает участников события в порядке регистрации
func (h *httpClient) GetParticipants(ctx context.Context, eventID int64) ([]event.Participant, error) {
	path := fmt.Sprintf("/api/events/%d/participants", eventID)
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var participants []event.Participant
	if err := h.parseResponse(resp, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// JoinEvent записывает аутентифицированного пользователя на событие
func (h *httpClient) JoinEvent(ctx context.Context, eventID int64, nick, role string) (event.Participant, error) {
	body := struct {
		Nick string `json:"nick"`
		Role string `json:"role"`
	}{Nick: nick, Role: role}

	path := fmt.Sprintf("/api/events/%d/join", eventID)
	resp, err := h.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return event.Participant{}, err
	}

	var p event.Participant
	if err := h.parseResponse(resp, &p); err != nil {
		return event.Participant{}, err
	}
	return p, nil
}

// LeaveEvent снимает запись пользователя с события
func (h *httpClient) LeaveEvent(ctx context.Context, eventID, userID int64) error {
	path := fmt.Sprintf("/api/events/%d/participants/%d", eventID, userID)
	resp, err := h.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// CreateEvent создает событие на сервере
func (h *httpClient) CreateEvent(ctx context.Context, req event.CreateRequest) (event.Event, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/events", req)
	if err != nil {
		return event.Event{}, err
	}

	var created event.Event
	if err := h.parseResponse(resp, &created); err != nil {
		return event.Event{}, err
	}
	return created, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

// errorMessage извлекает текст ошибки из тела ответа (RFC 7807 от huma
// либо простой {"error": ...}).
func errorMessage(body []byte) string {
	var errResp struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}

	switch {
	case errResp.Detail != "":
		return errResp.Detail
	case errResp.Error != "":
		return errResp.Error
	default:
		return errResp.Title
	}
}
