package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/user"
)

const (
	cacheKeyPrefix     = "event_"
	keyLastViewedEvent = "last_viewed_event_id"
	keyAuthToken       = "authToken"
	keyCurrentUser     = "currentUser"
)

// Cache хранит последние известные снимки событий для офлайн-режима.
// Записи не имеют срока жизни: устаревший снимок лучше пустого экрана.
type Cache struct {
	store Store
	log   *slog.Logger
}

func NewCache(store Store, log *slog.Logger) *Cache {
	return &Cache{
		store: store,
		log:   log.With("component", "cache"),
	}
}

func cacheKey(eventID int64) string {
	return cacheKeyPrefix + strconv.FormatInt(eventID, 10)
}

// SaveBundle перезаписывает снимок события целиком.
func (c *Cache) SaveBundle(eventID int64, entry CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка события %d: %w", eventID, err)
	}

	if err := c.store.Set(cacheKey(eventID), string(data)); err != nil {
		return fmt.Errorf("ошибка сохранения снимка события %d: %w", eventID, err)
	}

	c.log.Debug("снимок события сохранен", "event_id", eventID)
	return nil
}

// LoadBundle возвращает снимок события. Отсутствие снимка — не ошибка.
func (c *Cache) LoadBundle(eventID int64) (CacheEntry, bool, error) {
	raw, ok, err := c.store.Get(cacheKey(eventID))
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("ошибка чтения снимка события %d: %w", eventID, err)
	}
	if !ok {
		return CacheEntry{}, false, nil
	}

	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return CacheEntry{}, false, fmt.Errorf("ошибка разбора снимка события %d: %w", eventID, err)
	}

	return entry, true, nil
}

// SetLastViewedEventID запоминает последнее открытое событие, чтобы при
// офлайн-старте было что показать.
func (c *Cache) SetLastViewedEventID(eventID int64) error {
	return c.store.Set(keyLastViewedEvent, strconv.FormatInt(eventID, 10))
}

func (c *Cache) LastViewedEventID() (int64, bool) {
	raw, ok, err := c.store.Get(keyLastViewedEvent)
	if err != nil || !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.log.Warn("поврежденный last_viewed_event_id", "value", raw)
		return 0, false
	}
	return id, true
}

func (c *Cache) SaveToken(token string) error {
	return c.store.Set(keyAuthToken, token)
}

func (c *Cache) Token() (string, bool) {
	token, ok, err := c.store.Get(keyAuthToken)
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}

func (c *Cache) ClearToken() error {
	return c.store.Remove(keyAuthToken)
}

// SaveUser запоминает профиль вошедшего пользователя: join/leave в офлайне
// должны знать, от чьего имени откладывать действия.
func (c *Cache) SaveUser(u user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("ошибка сериализации пользователя: %w", err)
	}
	return c.store.Set(keyCurrentUser, string(data))
}

func (c *Cache) CurrentUser() (user.User, bool) {
	raw, ok, err := c.store.Get(keyCurrentUser)
	if err != nil || !ok {
		return user.User{}, false
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		c.log.Warn("поврежденный профиль пользователя в хранилище", "error", err)
		return user.User{}, false
	}
	return u, true
}

func (c *Cache) ClearUser() error {
	return c.store.Remove(keyCurrentUser)
}
